package services

import (
	"fmt"

	"bikeshare-stats/config"
	"bikeshare-stats/models"
)

// Filter narrows a record set by month and weekday. The month and day
// tables come from configuration.
type Filter struct {
	monthIndex map[string]int
	days       map[string]struct{}
}

// NewFilter builds a Filter from the configured month and weekday names.
// months must be in calendar order starting at January.
func NewFilter(months, days []string) *Filter {
	f := &Filter{
		monthIndex: make(map[string]int, len(months)),
		days:       make(map[string]struct{}, len(days)),
	}
	for i, m := range months {
		f.monthIndex[m] = i + 1
	}
	for _, d := range days {
		f.days[d] = struct{}{}
	}
	return f
}

// Apply returns the trips of set whose start month and weekday match.
// month is a configured month name or "all"; day is a configured weekday
// name or "All". Any other token means input validation was skipped and
// Apply panics. The result keeps the original order and schema.
func (f *Filter) Apply(set *models.RecordSet, month, day string) *models.RecordSet {
	monthNum := 0
	if month != config.AllMonths {
		n, ok := f.monthIndex[month]
		if !ok {
			panic(fmt.Sprintf("filter: illegal month %q", month))
		}
		monthNum = n
	}
	if day != config.AllDays {
		if _, ok := f.days[day]; !ok {
			panic(fmt.Sprintf("filter: illegal day %q", day))
		}
	}

	out := &models.RecordSet{
		City:   set.City,
		Schema: set.Schema,
		Trips:  make([]*models.Trip, 0, len(set.Trips)),
	}
	for _, t := range set.Trips {
		if monthNum != 0 && t.MonthNumber() != monthNum {
			continue
		}
		if day != config.AllDays && t.Weekday() != day {
			continue
		}
		out.Trips = append(out.Trips, t)
	}
	return out
}
