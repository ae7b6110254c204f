package services

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"bikeshare-stats/models"
	"bikeshare-stats/utils"
)

// Section names used as keys in Report.Failures.
const (
	SectionTime      = "time"
	SectionStations  = "stations"
	SectionDurations = "durations"
	SectionUsers     = "users"
)

// StatsService computes the descriptive statistics over a record set.
// Each method reads the set and returns a fresh result.
type StatsService struct {
	logger *utils.Logger
	months []string
}

// NewStatsService creates a StatsService. months names each month number
// (index + 1) for display.
func NewStatsService(logger *utils.Logger, months []string) *StatsService {
	return &StatsService{logger: logger, months: months}
}

// Generate runs every statistics section over set. A section that fails
// is left nil and recorded in Failures; the others still run.
func (s *StatsService) Generate(set *models.RecordSet, month, day string) *models.Report {
	report := &models.Report{
		RunID: uuid.NewString(),
		City:  set.City,
		Month: month,
		Day:   day,
		Trips: set.Len(),
	}
	if set.Len() == 0 {
		s.logger.Warn("[stats] %s: no trips match month=%s day=%s", set.City, month, day)
		return report
	}

	fail := func(section string, err error) {
		if report.Failures == nil {
			report.Failures = make(map[string]string)
		}
		report.Failures[section] = err.Error()
		s.logger.Error("[stats] run %s: %s section failed: %v", report.RunID, section, err)
	}

	var err error
	if report.Time, err = s.TimeStats(set); err != nil {
		fail(SectionTime, err)
	}
	if report.Stations, err = s.StationStats(set); err != nil {
		fail(SectionStations, err)
	}
	if report.Durations, err = s.DurationStats(set); err != nil {
		fail(SectionDurations, err)
	}
	report.Users = s.UserStats(set)

	s.logger.Debug("[stats] run %s: %d trips analysed for %s", report.RunID, report.Trips, set.City)
	return report
}

// TimeStats finds the most common month, weekday and start hour.
func (s *StatsService) TimeStats(set *models.RecordSet) (*models.TimeStats, error) {
	start := time.Now()

	months := make([]int, len(set.Trips))
	days := make([]string, len(set.Trips))
	hours := make([]int, len(set.Trips))
	for i, t := range set.Trips {
		months[i] = t.MonthNumber()
		days[i] = t.Weekday()
		hours[i] = t.Hour()
	}

	monthMode, err := ResolveMode(months)
	if err != nil {
		return nil, fmt.Errorf("month: %w", err)
	}
	dayMode, err := ResolveMode(days)
	if err != nil {
		return nil, fmt.Errorf("weekday: %w", err)
	}
	hourMode, err := ResolveMode(hours)
	if err != nil {
		return nil, fmt.Errorf("hour: %w", err)
	}

	res := &models.TimeStats{}

	if distinct(months) > 1 {
		res.Month.Count = monthMode.Count
		for _, m := range monthMode.Values {
			res.Month.Values = append(res.Month.Values, s.monthName(m))
		}
	} else {
		res.Month.Only = s.monthName(months[0])
	}

	if distinct(days) > 1 {
		res.Weekday.Count = dayMode.Count
		res.Weekday.Values = dayMode.Values
	} else {
		res.Weekday.Only = days[0]
	}

	// Only the earliest of tied hours is reported.
	res.Hour = hourMode.First()
	if hourMode.Tied() {
		s.logger.Debug("[stats] %s: hours %s tied at %d trips, reporting %s",
			set.City, JoinValues(hourMode.Values), hourMode.Count, HourLabel(res.Hour))
	}
	res.HourLabel = HourLabel(res.Hour)

	res.Elapsed = time.Since(start)
	return res, nil
}

// StationStats finds the most used start station, end station and
// journey. Ties are not reported: the alphabetically first value wins.
func (s *StatsService) StationStats(set *models.RecordSet) (*models.StationStats, error) {
	start := time.Now()

	var starts, ends []string
	journeys := make([]string, 0, len(set.Trips))
	for _, t := range set.Trips {
		if t.StartStation != "" {
			starts = append(starts, t.StartStation)
		}
		if t.EndStation != "" {
			ends = append(ends, t.EndStation)
		}
		journeys = append(journeys, t.Journey())
	}

	res := &models.StationStats{}
	var err error
	if res.Start, err = mostPopular(starts); err != nil {
		return nil, fmt.Errorf("start station: %w", err)
	}
	if res.End, err = mostPopular(ends); err != nil {
		return nil, fmt.Errorf("end station: %w", err)
	}
	if res.Journey, err = mostPopular(journeys); err != nil {
		return nil, fmt.Errorf("journey: %w", err)
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// DurationStats totals and averages trip durations, ignoring trips
// without one.
func (s *StatsService) DurationStats(set *models.RecordSet) (*models.DurationStats, error) {
	start := time.Now()

	res := &models.DurationStats{}
	for _, t := range set.Trips {
		if t.Duration == nil {
			continue
		}
		res.Total += *t.Duration
		res.Trips++
	}
	if res.Trips == 0 {
		return nil, fmt.Errorf("trip duration: %w", ErrEmptyColumn)
	}

	res.Mean = res.Total / float64(res.Trips)
	res.TotalText = FormatDuration(res.Total)
	res.MeanText = FormatDuration(res.Mean)

	res.Elapsed = time.Since(start)
	return res, nil
}

// UserStats breaks trips down by user type, gender and birth year. A
// column without data is reported as absent, never as an error.
func (s *StatsService) UserStats(set *models.RecordSet) *models.UserStats {
	start := time.Now()

	res := &models.UserStats{
		UserTypes: breakdown(set, set.Schema.HasUserType, func(t *models.Trip) string { return t.UserType }),
		Genders:   breakdown(set, set.Schema.HasGender, func(t *models.Trip) string { return t.Gender }),
	}

	if set.Schema.HasBirthYear {
		var years []int
		for _, t := range set.Trips {
			if t.BirthYear != nil {
				years = append(years, *t.BirthYear)
			}
		}
		if mode, err := ResolveMode(years); err == nil {
			res.BirthYears = models.BirthYearStats{
				Present:  true,
				Earliest: slices.Min(years),
				Latest:   slices.Max(years),
				Common:   mode,
				Missing:  len(set.Trips) - len(years),
			}
		} else {
			s.logger.Debug("[stats] %s: birth year column is empty", set.City)
		}
	}

	res.Elapsed = time.Since(start)
	return res
}

func (s *StatsService) monthName(n int) string {
	if n >= 1 && n <= len(s.months) {
		return TitleCase(s.months[n-1])
	}
	return time.Month(n).String()
}

// HourLabel renders a 24-hour clock hour as hour%12 with an am/pm suffix.
// Midnight renders as "0am".
func HourLabel(hour int) string {
	suffix := "am"
	if hour/12 == 1 {
		suffix = "pm"
	}
	return fmt.Sprintf("%d%s", hour%12, suffix)
}

// JoinGroups renders grouped counts as "3 Customer, 5 Dependent and 9
// Subscriber".
func JoinGroups(groups []models.GroupCount) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%d %s", g.Count, g.Label)
	}
	if len(parts) <= 1 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// JoinValues renders modal values as a comma separated list.
func JoinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func breakdown(set *models.RecordSet, inSchema bool, field func(*models.Trip) string) models.Breakdown {
	if !inSchema {
		return models.Breakdown{}
	}

	var values []string
	for _, t := range set.Trips {
		if v := field(t); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return models.Breakdown{}
	}

	return models.Breakdown{
		Present: true,
		Groups:  groupCounts(values),
		Missing: len(set.Trips) - len(values),
	}
}

func mostPopular(values []string) (models.Popular, error) {
	mode, err := ResolveMode(values)
	if err != nil {
		return models.Popular{}, err
	}
	name := mode.First()
	return models.Popular{Name: name, Count: countEqual(values, name)}, nil
}

func distinct[T comparable](values []T) int {
	seen := make(map[T]struct{})
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// TitleCase upper-cases the first letter of every word, lower-cases the
// rest and collapses runs of white space.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
