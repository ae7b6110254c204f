package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"bikeshare-stats/config"
	"bikeshare-stats/services"
)

// Prompter collects and validates the city, month and day filters
// interactively. Only legal values are ever returned.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	cities []string
	months []string
	days   []string
}

// NewPrompter creates a Prompter for the configured cities, months and days.
func NewPrompter(in io.Reader, out io.Writer, cfg *config.Config) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		cities: cfg.CityNames(),
		months: cfg.Months,
		days:   cfg.Days,
	}
}

// Filters asks for a city, month and day until each answer is legal.
func (p *Prompter) Filters() (city, month, day string, err error) {
	fmt.Fprintln(p.out, "Hello! Let's explore some US bikeshare data!")

	city, err = p.ask("Please enter a city: ", p.cityRetry(), normaliseCity, p.ValidCity)
	if err != nil {
		return "", "", "", err
	}
	month, err = p.ask("Please enter a month: ", p.monthRetry(), normaliseMonth, p.ValidMonth)
	if err != nil {
		return "", "", "", err
	}
	day, err = p.ask("Please enter a day: ", "Please enter a day: ", normaliseDay, p.ValidDay)
	if err != nil {
		return "", "", "", err
	}

	fmt.Fprintln(p.out, strings.Repeat("-", 40))
	return city, month, day, nil
}

// Confirm asks a yes/no question. Anything but "yes" counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.readLine(question)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "yes", nil
}

// ValidCity reports whether city is configured.
func (p *Prompter) ValidCity(city string) bool {
	return slices.Contains(p.cities, city)
}

// ValidMonth reports whether month is a configured month or "all".
func (p *Prompter) ValidMonth(month string) bool {
	return month == config.AllMonths || slices.Contains(p.months, month)
}

// ValidDay reports whether day is a configured weekday or "All".
func (p *Prompter) ValidDay(day string) bool {
	return day == config.AllDays || slices.Contains(p.days, day)
}

func (p *Prompter) ask(prompt, retry string, normalise func(string) string, valid func(string) bool) (string, error) {
	answer, err := p.readLine(prompt)
	if err != nil {
		return "", err
	}
	value := normalise(answer)
	for !valid(value) {
		answer, err = p.readLine(retry)
		if err != nil {
			return "", err
		}
		value = normalise(answer)
	}
	return value, nil
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) cityRetry() string {
	names := make([]string, len(p.cities))
	for i, c := range p.cities {
		names[i] = services.TitleCase(c)
	}
	return fmt.Sprintf("City not found.  Please choose %s: ", joinOr(names))
}

func (p *Prompter) monthRetry() string {
	return fmt.Sprintf("Please enter a month (%s): ", joinOr(append(slices.Clone(p.months), config.AllMonths)))
}

func normaliseCity(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func normaliseMonth(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normaliseDay(s string) string {
	return services.TitleCase(strings.TrimSpace(s))
}

func joinOr(items []string) string {
	if len(items) <= 1 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
