package models

import "time"

// MissingSentinel is the text a missing end station takes inside a journey label.
const MissingSentinel = "nan"

// RawTrip holds one unprocessed row as the record source delivered it.
// Every field is text; an empty string means the source had no value.
type RawTrip struct {
	StartTime    string
	EndTime      string
	TripDuration string
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    string
}

// Trip is a cleaned bike-share ride. Only Start is guaranteed; every other
// attribute may be missing independently.
type Trip struct {
	Start        time.Time
	End          *time.Time
	Duration     *float64
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    *int
}

// MonthNumber returns the calendar month of the start time (1-12).
func (t *Trip) MonthNumber() int {
	return int(t.Start.Month())
}

// Weekday returns the capitalized English weekday name of the start time.
func (t *Trip) Weekday() string {
	return t.Start.Weekday().String()
}

// Hour returns the 24-hour clock hour of the start time.
func (t *Trip) Hour() int {
	return t.Start.Hour()
}

// Journey labels the route as "<start> to <end>".
func (t *Trip) Journey() string {
	end := t.EndStation
	if end == "" {
		end = MissingSentinel
	}
	return t.StartStation + " to " + end
}

// Schema records which optional demographic columns a source provides.
// Not every city publishes gender or birth year.
type Schema struct {
	HasUserType  bool `json:"has_user_type"`
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
}

// RecordSet is an ordered collection of trips loaded for one city.
type RecordSet struct {
	City   string
	Schema Schema
	Trips  []*Trip
}

// Len returns the number of trips in the set.
func (rs *RecordSet) Len() int {
	return len(rs.Trips)
}

// Page returns up to n trips starting at offset. An offset past the end
// yields an empty slice.
func (rs *RecordSet) Page(offset, n int) []*Trip {
	if offset < 0 || offset >= len(rs.Trips) || n <= 0 {
		return nil
	}
	end := offset + n
	if end > len(rs.Trips) {
		end = len(rs.Trips)
	}
	return rs.Trips[offset:end]
}
