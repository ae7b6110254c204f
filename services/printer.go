package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"bikeshare-stats/models"
)

// Printer renders reports and raw trips for the console.
type Printer struct {
	out     io.Writer
	header  func(a ...interface{}) string
	section func(a ...interface{}) string
	value   func(a ...interface{}) string
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		header:  color.New(color.FgHiCyan, color.Bold).SprintFunc(),
		section: color.New(color.FgCyan, color.Bold).SprintFunc(),
		value:   color.New(color.Bold).SprintFunc(),
	}
}

// Print writes every section of r in the order they were computed.
func (p *Printer) Print(r *models.Report) {
	thin := strings.Repeat("-", 40)

	fmt.Fprintln(p.out, p.header(fmt.Sprintf("Bikeshare statistics for %s (month: %s, day: %s)",
		TitleCase(r.City), r.Month, r.Day)))
	fmt.Fprintln(p.out, thin)

	if r.Trips == 0 {
		fmt.Fprintln(p.out, "No trips match the selected filters.")
		fmt.Fprintln(p.out, thin)
		return
	}

	p.printTime(r)
	fmt.Fprintln(p.out, thin)
	p.printStations(r)
	fmt.Fprintln(p.out, thin)
	p.printDurations(r)
	fmt.Fprintln(p.out, thin)
	p.printUsers(r)
	fmt.Fprintln(p.out, thin)
}

// PrintJSON writes r as indented JSON.
func (p *Printer) PrintJSON(r *models.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("printer: encode report: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

// PrintTrips writes one block per raw trip, numbered from offset+1.
func (p *Printer) PrintTrips(trips []*models.Trip, offset int) {
	for i, t := range trips {
		fmt.Fprintf(p.out, "%s\n", p.value(fmt.Sprintf("#%d", offset+i+1)))
		fmt.Fprintf(p.out, "  Start Time    : %s\n", t.Start.Format("2006-01-02 15:04:05"))
		if t.End != nil {
			fmt.Fprintf(p.out, "  End Time      : %s\n", t.End.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(p.out, "  Trip Duration : %s\n", optionalFloat(t.Duration))
		fmt.Fprintf(p.out, "  Start Station : %s\n", t.StartStation)
		fmt.Fprintf(p.out, "  End Station   : %s\n", orNaN(t.EndStation))
		fmt.Fprintf(p.out, "  User Type     : %s\n", orNaN(t.UserType))
		fmt.Fprintf(p.out, "  Gender        : %s\n", orNaN(t.Gender))
		fmt.Fprintf(p.out, "  Birth Year    : %s\n", optionalInt(t.BirthYear))
	}
}

func (p *Printer) printTime(r *models.Report) {
	fmt.Fprintln(p.out, p.section("\nCalculating The Most Frequent Times of Travel...\n"))
	if p.failed(r, SectionTime) {
		return
	}
	ts := r.Time

	if ts.Month.Single() {
		fmt.Fprintf(p.out, "Only data for %s was loaded\n", ts.Month.Only)
	} else {
		fmt.Fprintf(p.out, "The most common month for a trip is: %s\n", p.value(JoinValues(ts.Month.Values)))
	}

	if ts.Weekday.Single() {
		fmt.Fprintf(p.out, "Only data for %s was loaded\n", ts.Weekday.Only)
	} else {
		fmt.Fprintf(p.out, "The most common day of the week for a trip is: %s\n", p.value(JoinValues(ts.Weekday.Values)))
	}

	fmt.Fprintf(p.out, "The most common hour for a trip to start is: %s\n", p.value(ts.HourLabel))
	p.elapsed(ts.Elapsed)
}

func (p *Printer) printStations(r *models.Report) {
	fmt.Fprintln(p.out, p.section("\nCalculating The Most Popular Stations and Trip...\n"))
	if p.failed(r, SectionStations) {
		return
	}
	ss := r.Stations

	fmt.Fprintf(p.out, "%d trips started from the most popular start station of %s.\n", ss.Start.Count, p.value(ss.Start.Name))
	fmt.Fprintf(p.out, "%d trips ended at the most popular end station of %s.\n", ss.End.Count, p.value(ss.End.Name))
	fmt.Fprintf(p.out, "%d trips were between %s, which is the most popular journey.\n", ss.Journey.Count, p.value(ss.Journey.Name))
	p.elapsed(ss.Elapsed)
}

func (p *Printer) printDurations(r *models.Report) {
	fmt.Fprintln(p.out, p.section("\nCalculating Trip Duration...\n"))
	if p.failed(r, SectionDurations) {
		return
	}
	ds := r.Durations

	fmt.Fprintf(p.out, "The total time spent cycling was %.2f seconds.\n", ds.Total)
	fmt.Fprintf(p.out, "which is: %s.\n", p.value(ds.TotalText))
	fmt.Fprintf(p.out, "\nThe average time per trip was %.2f seconds.\n", ds.Mean)
	fmt.Fprintf(p.out, "which is: %s.\n", p.value(ds.MeanText))
	p.elapsed(ds.Elapsed)
}

func (p *Printer) printUsers(r *models.Report) {
	fmt.Fprintln(p.out, p.section("\nCalculating User Stats...\n"))
	if p.failed(r, SectionUsers) || r.Users == nil {
		return
	}
	us := r.Users

	if us.UserTypes.Present {
		fmt.Fprintf(p.out, "Trips were made by %s user types\n", JoinGroups(us.UserTypes.Groups))
		if us.UserTypes.Missing > 0 {
			fmt.Fprintf(p.out, "%d trips had no user type data.\n", us.UserTypes.Missing)
		}
	} else {
		fmt.Fprintln(p.out, "No user types data exists.")
	}

	if us.Genders.Present {
		fmt.Fprintf(p.out, "Trips were made by %s users.\n", JoinGroups(us.Genders.Groups))
		if us.Genders.Missing > 0 {
			fmt.Fprintf(p.out, "%d trips had no gender data.\n", us.Genders.Missing)
		}
	} else {
		fmt.Fprintln(p.out, "No gender data exists.")
	}

	by := us.BirthYears
	if by.Present {
		fmt.Fprintf(p.out, "Trips were taken by people born between %d and %d\n", by.Earliest, by.Latest)
		fmt.Fprintf(p.out, "%s was the most common year of birth, with %d trips\n",
			p.value(JoinValues(by.Common.Values)), by.Common.Count)
		if by.Missing > 0 {
			fmt.Fprintf(p.out, "%d trips had no year of birth data.\n", by.Missing)
		}
	} else {
		fmt.Fprintln(p.out, "No year of birth data exists.")
	}
	p.elapsed(us.Elapsed)
}

func (p *Printer) failed(r *models.Report, section string) bool {
	msg, ok := r.Failures[section]
	if ok {
		fmt.Fprintf(p.out, "Could not compute these statistics: %s\n", msg)
	}
	return ok
}

func (p *Printer) elapsed(d time.Duration) {
	fmt.Fprintf(p.out, "\nThis took %v seconds.\n", d.Seconds())
}

func orNaN(s string) string {
	if s == "" {
		return "NaN"
	}
	return s
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", *v)
}

func optionalInt(v *int) string {
	if v == nil {
		return "NaN"
	}
	return fmt.Sprintf("%d", *v)
}
