package storage

import (
	"context"
	"errors"

	"bikeshare-stats/models"
)

// ErrUnknownCity is returned when a source has no trips for a city.
var ErrUnknownCity = errors.New("unknown city")

// TripSource is the interface any record backend must satisfy. Load
// returns the full trip log for a city; callers must not modify it.
type TripSource interface {
	Load(ctx context.Context, city string) (*models.RecordSet, error)
	Close() error
}

// Column headers of the published trip files.
const (
	colStartTime    = "Start Time"
	colEndTime      = "End Time"
	colTripDuration = "Trip Duration"
	colStartStation = "Start Station"
	colEndStation   = "End Station"
	colUserType     = "User Type"
	colGender       = "Gender"
	colBirthYear    = "Birth Year"
)
