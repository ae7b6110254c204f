package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bikeshare-stats/models"
	"bikeshare-stats/services"
	"bikeshare-stats/utils"
)

// tripColumns maps the trips table columns to the published CSV headers,
// in the order they are selected.
var tripColumns = []struct {
	name   string
	header string
}{
	{"start_time", colStartTime},
	{"end_time", colEndTime},
	{"trip_duration", colTripDuration},
	{"start_station", colStartStation},
	{"end_station", colEndStation},
	{"user_type", colUserType},
	{"gender", colGender},
	{"birth_year", colBirthYear},
}

// dialect holds the SQL that differs between database backends.
type dialect struct {
	name         string
	columnsQuery string
	placeholder  string
}

var (
	sqliteDialect = dialect{
		name:         "sqlite",
		columnsQuery: "SELECT name FROM pragma_table_info('trips')",
		placeholder:  "?",
	}
	postgresDialect = dialect{
		name: "postgres",
		columnsQuery: `SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = 'trips'`,
		placeholder: "$1",
	}
)

// selectQuery builds the trip query for a table holding cols. Columns the
// table lacks are selected as NULL so every row scans the same way.
func (d dialect) selectQuery(cols map[string]bool) string {
	selects := make([]string, len(tripColumns))
	for i, c := range tripColumns {
		if cols[c.name] {
			selects[i] = c.name
		} else {
			selects[i] = "NULL"
		}
	}
	return fmt.Sprintf("SELECT %s FROM trips WHERE city = %s ORDER BY id",
		strings.Join(selects, ", "), d.placeholder)
}

// sqlSource reads trips from a "trips" table with one row per trip and a
// "city" column. Optional columns may be left out of the table.
type sqlSource struct {
	db      *sql.DB
	dialect dialect
	cleaner *services.Cleaner
	logger  *utils.Logger
}

// openSQL opens driverName and pings it with back-off.
func openSQL(ctx context.Context, driverName, dsn string, retry *utils.RetryConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driverName, err)
	}

	if err := retry.Do(driverName+" ping", func() error { return db.PingContext(ctx) }); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// columns returns the set of column names of the trips table.
func (s *sqlSource) columns(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: list columns: %w", s.dialect.name, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: scan column: %w", s.dialect.name, err)
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}

// Load fetches every trip for city in insertion order.
func (s *sqlSource) Load(ctx context.Context, city string) (*models.RecordSet, error) {
	cols, err := s.columns(ctx)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: trips table not found", s.dialect.name)
	}
	if !cols["start_time"] {
		return nil, fmt.Errorf("%s: trips table has no start_time column", s.dialect.name)
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.selectQuery(cols), city)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch trips: %w", s.dialect.name, err)
	}
	defer rows.Close()

	var raw []*models.RawTrip
	for rows.Next() {
		var v [8]sql.NullString
		if err := rows.Scan(&v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6], &v[7]); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.dialect.name, err)
		}
		raw = append(raw, &models.RawTrip{
			StartTime:    v[0].String,
			EndTime:      v[1].String,
			TripDuration: v[2].String,
			StartStation: v[3].String,
			EndStation:   v[4].String,
			UserType:     v[5].String,
			Gender:       v[6].String,
			BirthYear:    v[7].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: fetch trips: %w", s.dialect.name, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %q: %w", s.dialect.name, city, ErrUnknownCity)
	}

	s.logger.Info("[%s] Loaded %d rows for %s", s.dialect.name, len(raw), city)

	return &models.RecordSet{
		City: city,
		Schema: models.Schema{
			HasUserType:  cols["user_type"],
			HasGender:    cols["gender"],
			HasBirthYear: cols["birth_year"],
		},
		Trips: s.cleaner.Clean(raw),
	}, nil
}

func (s *sqlSource) Close() error {
	return s.db.Close()
}
