package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"bikeshare-stats/utils"
)

func newSQLiteFixture(t *testing.T, schema string, inserts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trips.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for _, stmt := range append([]string{schema}, inserts...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func openTestSQLite(t *testing.T, path string) *SQLiteSource {
	t.Helper()
	retry := &utils.RetryConfig{MaxAttempts: 1, Logger: newTestLogger()}
	src, err := NewSQLiteSource(context.Background(), path, retry, newTestCleaner(), newTestLogger())
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	t.Cleanup(func() { src.Close() })
	return src
}

func TestSQLiteSourceLoad(t *testing.T) {
	path := newSQLiteFixture(t,
		`CREATE TABLE trips (
			id INTEGER PRIMARY KEY,
			city TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT,
			trip_duration REAL,
			start_station TEXT,
			end_station TEXT,
			user_type TEXT,
			gender TEXT,
			birth_year REAL
		)`,
		`INSERT INTO trips (city, start_time, end_time, trip_duration, start_station, end_station, user_type, gender, birth_year)
			VALUES ('chicago', '2017-01-01 00:07:57', '2017-01-01 00:20:53', 776, 'Canal St & Madison St', 'Paulina Ave & North Ave', 'Subscriber', 'Male', 1984)`,
		`INSERT INTO trips (city, start_time, trip_duration, start_station, user_type)
			VALUES ('chicago', '2017-03-04 13:00:00', 120.5, 'Wood St & Hubbard St', 'Customer')`,
		`INSERT INTO trips (city, start_time, start_station)
			VALUES ('new york city', '2017-03-04 13:00:00', 'W 21 St & 6 Ave')`,
	)
	src := openTestSQLite(t, path)

	set, err := src.Load(context.Background(), "chicago")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 trips, got %d", set.Len())
	}
	if !set.Schema.HasGender || !set.Schema.HasBirthYear {
		t.Errorf("schema: got %+v", set.Schema)
	}

	first, second := set.Trips[0], set.Trips[1]
	if first.Duration == nil || *first.Duration != 776 || first.BirthYear == nil || *first.BirthYear != 1984 {
		t.Errorf("first trip: %+v", first)
	}
	if second.Duration == nil || *second.Duration != 120.5 {
		t.Errorf("second duration: %v", second.Duration)
	}
	if second.EndStation != "" || second.Gender != "" || second.BirthYear != nil || second.End != nil {
		t.Errorf("second trip should have missing fields: %+v", second)
	}
}

func TestSQLiteSourceMissingColumns(t *testing.T) {
	path := newSQLiteFixture(t,
		`CREATE TABLE trips (id INTEGER PRIMARY KEY, city TEXT, start_time TEXT, trip_duration REAL, start_station TEXT, end_station TEXT, user_type TEXT)`,
		`INSERT INTO trips (city, start_time, trip_duration, start_station, end_station, user_type)
			VALUES ('washington', '2017-06-21 08:36:34', 489.066, '14th & Belmont St NW', '15th & K St NW', 'Subscriber')`,
	)
	src := openTestSQLite(t, path)

	set, err := src.Load(context.Background(), "washington")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.Schema.HasUserType || set.Schema.HasGender || set.Schema.HasBirthYear {
		t.Errorf("schema: got %+v", set.Schema)
	}
	if set.Trips[0].Journey() != "14th & Belmont St NW to 15th & K St NW" {
		t.Errorf("journey: %q", set.Trips[0].Journey())
	}
}

func TestSQLiteSourceUnknownCity(t *testing.T) {
	path := newSQLiteFixture(t,
		`CREATE TABLE trips (id INTEGER PRIMARY KEY, city TEXT, start_time TEXT)`,
	)
	src := openTestSQLite(t, path)

	_, err := src.Load(context.Background(), "boston")
	if !errors.Is(err, ErrUnknownCity) {
		t.Errorf("expected ErrUnknownCity, got %v", err)
	}
}
