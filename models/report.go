package models

import (
	"cmp"
	"time"
)

// Mode is the outcome of a tie-aware mode computation: the maximum
// frequency and every value that reaches it, in ascending order.
type Mode[T cmp.Ordered] struct {
	Count  int `json:"count"`
	Values []T `json:"values"`
}

// First returns the smallest modal value.
func (m *Mode[T]) First() T {
	return m.Values[0]
}

// Tied reports whether more than one value shares the maximum frequency.
func (m *Mode[T]) Tied() bool {
	return len(m.Values) > 1
}

// CalendarMode describes a month or weekday statistic. When the filtered
// set only holds one distinct value Only is set and Values is empty.
type CalendarMode struct {
	Only   string   `json:"only,omitempty"`
	Values []string `json:"values,omitempty"`
	Count  int      `json:"count,omitempty"`
}

// Single reports whether only one distinct value was loaded.
func (c CalendarMode) Single() bool {
	return c.Only != ""
}

// TimeStats holds the most frequent times of travel.
type TimeStats struct {
	Month     CalendarMode  `json:"month"`
	Weekday   CalendarMode  `json:"weekday"`
	Hour      int           `json:"hour"`
	HourLabel string        `json:"hour_label"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Popular is a most-used station or route with its trip count.
type Popular struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StationStats holds the most popular stations and journey.
type StationStats struct {
	Start   Popular       `json:"start_station"`
	End     Popular       `json:"end_station"`
	Journey Popular       `json:"journey"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// DurationStats holds total and mean trip duration in seconds.
type DurationStats struct {
	Trips     int           `json:"trips"`
	Total     float64       `json:"total_seconds"`
	TotalText string        `json:"total_text"`
	Mean      float64       `json:"mean_seconds"`
	MeanText  string        `json:"mean_text"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// GroupCount is one label of a grouped count.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Breakdown is a grouped count over an optional column. Present is false
// when the source has no data for the column at all.
type Breakdown struct {
	Present bool         `json:"present"`
	Groups  []GroupCount `json:"groups,omitempty"`
	Missing int          `json:"missing"`
}

// BirthYearStats summarises rider birth years.
type BirthYearStats struct {
	Present  bool       `json:"present"`
	Earliest int        `json:"earliest,omitempty"`
	Latest   int        `json:"latest,omitempty"`
	Common   *Mode[int] `json:"most_common,omitempty"`
	Missing  int        `json:"missing"`
}

// UserStats holds rider demographics.
type UserStats struct {
	UserTypes  Breakdown      `json:"user_types"`
	Genders    Breakdown      `json:"genders"`
	BirthYears BirthYearStats `json:"birth_years"`
	Elapsed    time.Duration  `json:"elapsed_ns"`
}

// Report collects the four statistics sections for one analysis run.
// A section that could not be computed is nil and its error is kept in
// Failures under the section name.
type Report struct {
	RunID     string            `json:"run_id"`
	City      string            `json:"city"`
	Month     string            `json:"month"`
	Day       string            `json:"day"`
	Trips     int               `json:"trips"`
	Time      *TimeStats        `json:"time,omitempty"`
	Stations  *StationStats     `json:"stations,omitempty"`
	Durations *DurationStats    `json:"durations,omitempty"`
	Users     *UserStats        `json:"users,omitempty"`
	Failures  map[string]string `json:"failures,omitempty"`
}
