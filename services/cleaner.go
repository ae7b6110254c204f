package services

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"bikeshare-stats/models"
	"bikeshare-stats/utils"
)

// timeLayouts are tried in order when parsing start and end times.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Cleaner transforms RawTrips into typed Trips.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw rows into trips, keeping their order. Rows whose
// start time cannot be parsed are dropped; every other unparseable field
// becomes missing.
func (c *Cleaner) Clean(raw []*models.RawTrip) []*models.Trip {
	result := make([]*models.Trip, 0, len(raw))

	for i, r := range raw {
		start, ok := parseTime(r.StartTime)
		if !ok {
			c.logger.Warn("[cleaner] Dropping row %d with unparseable start time %q", i+1, r.StartTime)
			continue
		}

		trip := &models.Trip{
			Start:        start,
			StartStation: normaliseText(r.StartStation),
			EndStation:   normaliseText(r.EndStation),
			UserType:     normaliseText(r.UserType),
			Gender:       normaliseText(r.Gender),
			Duration:     c.parseDuration(r.TripDuration),
			BirthYear:    c.parseBirthYear(r.BirthYear),
		}
		if end, ok := parseTime(r.EndTime); ok {
			trip.End = &end
		}

		result = append(result, trip)
	}

	if dropped := len(raw) - len(result); dropped > 0 {
		c.logger.Info("[cleaner] Cleaned %d → %d trips (dropped %d)", len(raw), len(result), dropped)
	} else {
		c.logger.Debug("[cleaner] Cleaned %d trips", len(result))
	}
	return result
}

// parseDuration reads a non-negative number of seconds.
func (c *Cleaner) parseDuration(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		c.logger.Debug("[cleaner] Ignoring invalid trip duration %q", raw)
		return nil
	}
	return &val
}

// parseBirthYear reads a year that may be stored as "1989" or "1989.0".
// Fractions are truncated.
func (c *Cleaner) parseBirthYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		c.logger.Debug("[cleaner] Ignoring invalid birth year %q", raw)
		return nil
	}
	year := int(val)
	return &year
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
