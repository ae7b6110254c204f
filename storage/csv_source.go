package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"bikeshare-stats/models"
	"bikeshare-stats/services"
	"bikeshare-stats/utils"
)

// nanValues are the cell contents treated as missing.
var nanValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// CSVSource reads a city's trip log from a CSV file.
type CSVSource struct {
	paths   func(city string) (string, bool)
	cleaner *services.Cleaner
	logger  *utils.Logger
}

// NewCSVSource creates a CSVSource. paths resolves a city name to its file.
func NewCSVSource(paths func(city string) (string, bool), cleaner *services.Cleaner, logger *utils.Logger) *CSVSource {
	return &CSVSource{paths: paths, cleaner: cleaner, logger: logger}
}

// Load parses the whole file for city. Optional columns that the file
// lacks are recorded in the returned schema.
func (s *CSVSource) Load(ctx context.Context, city string) (*models.RecordSet, error) {
	path, ok := s.paths(city)
	if !ok {
		return nil, fmt.Errorf("csv: %q: %w", city, ErrUnknownCity)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("csv: parse %q: %w", path, df.Err)
	}

	present := make(map[string]bool)
	for _, name := range df.Names() {
		present[name] = true
	}
	if !present[colStartTime] {
		return nil, fmt.Errorf("csv: %q has no %q column", path, colStartTime)
	}

	column := func(name string) []string {
		if !present[name] {
			return nil
		}
		col := df.Col(name)
		values := col.Records()
		for i, nan := range col.IsNaN() {
			if nan {
				values[i] = ""
			}
		}
		return values
	}

	starts := column(colStartTime)
	ends := column(colEndTime)
	durations := column(colTripDuration)
	startStations := column(colStartStation)
	endStations := column(colEndStation)
	userTypes := column(colUserType)
	genders := column(colGender)
	birthYears := column(colBirthYear)

	raw := make([]*models.RawTrip, df.Nrow())
	for i := range raw {
		raw[i] = &models.RawTrip{
			StartTime:    starts[i],
			EndTime:      at(ends, i),
			TripDuration: at(durations, i),
			StartStation: at(startStations, i),
			EndStation:   at(endStations, i),
			UserType:     at(userTypes, i),
			Gender:       at(genders, i),
			BirthYear:    at(birthYears, i),
		}
	}

	s.logger.Info("[csv] Loaded %d rows for %s from %s", len(raw), city, path)

	return &models.RecordSet{
		City: city,
		Schema: models.Schema{
			HasUserType:  present[colUserType],
			HasGender:    present[colGender],
			HasBirthYear: present[colBirthYear],
		},
		Trips: s.cleaner.Clean(raw),
	}, nil
}

// Close is a no-op; files are closed after each Load.
func (s *CSVSource) Close() error {
	return nil
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
