package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"bikeshare-stats/config"
	"bikeshare-stats/models"
	"bikeshare-stats/storage"
	"bikeshare-stats/utils"
)

type staticSource struct {
	set *models.RecordSet
}

func (s *staticSource) Load(_ context.Context, city string) (*models.RecordSet, error) {
	if city != s.set.City {
		return nil, storage.ErrUnknownCity
	}
	return s.set, nil
}

func (s *staticSource) Close() error { return nil }

func tripsOn(days ...string) *models.RecordSet {
	set := &models.RecordSet{City: "chicago", Schema: models.Schema{HasUserType: true}}
	for i, d := range days {
		start, err := time.Parse("2006-01-02 15:04:05", d)
		if err != nil {
			panic(err)
		}
		dur := float64(60 * (i + 1))
		set.Trips = append(set.Trips, &models.Trip{
			Start:        start,
			Duration:     &dur,
			StartStation: "Canal St & Madison St",
			EndStation:   "Wood St & Hubbard St",
			UserType:     "Subscriber",
		})
	}
	return set
}

func TestAppAnalyze(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	set := tripsOn("2017-01-02 08:00:00", "2017-02-06 09:00:00", "2017-02-07 09:30:00")
	app := NewApp(testConfig(), utils.NewLoggerTo(io.Discard, false), &staticSource{set: set}, &out, false)

	filtered, err := app.Analyze(context.Background(), "chicago", "february", config.AllDays)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 2 {
		t.Errorf("filtered: got %d, want 2", filtered.Len())
	}
	if !strings.Contains(out.String(), "Only data for February was loaded") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if set.Len() != 3 {
		t.Error("source set must not be modified")
	}
}

func TestAppAnalyzeUnknownCity(t *testing.T) {
	app := NewApp(testConfig(), utils.NewLoggerTo(io.Discard, false), &staticSource{set: tripsOn()}, io.Discard, false)

	if _, err := app.Analyze(context.Background(), "washington", config.AllMonths, config.AllDays); err == nil {
		t.Error("expected error for missing city")
	}
}

func TestAppPage(t *testing.T) {
	color.NoColor = true
	days := make([]string, 12)
	for i := range days {
		days[i] = "2017-03-01 10:00:00"
	}
	set := tripsOn(days...)

	cfg := testConfig()
	cfg.PageSize = 5

	tests := []struct {
		answers string
		want    []string
		notWant string
	}{
		{"no\n", nil, "#1"},
		{"yes\nno\n", []string{"#1", "#5"}, "#6"},
		{"yes\nyes\nyes\n", []string{"#1", "#10", "#12"}, "#13"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		app := NewApp(cfg, utils.NewLoggerTo(io.Discard, false), &staticSource{set: set}, &out, false)
		p := NewPrompter(strings.NewReader(tt.answers), io.Discard, cfg)

		if err := app.Page(set, p); err != nil {
			t.Fatalf("answers %q: %v", tt.answers, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(out.String(), w+"\n") {
				t.Errorf("answers %q: missing %s", tt.answers, w)
			}
		}
		if strings.Contains(out.String(), tt.notWant+"\n") {
			t.Errorf("answers %q: unexpected %s", tt.answers, tt.notWant)
		}
	}
}

func TestRootCommandNonInteractive(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	csv := "Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n" +
		"2017-06-21 08:36:34,2017-06-21 08:44:43,489,14th & Belmont St NW,15th & K St NW,Subscriber\n" +
		"2017-06-22 08:10:00,2017-06-22 08:20:00,600,14th & Belmont St NW,15th & K St NW,Customer\n"
	if err := os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_DIR", dir)
	t.Setenv("CITIES_FILE", "")
	t.Setenv("TRIP_SOURCE", "csv")
	t.Setenv("LOG_DEBUG", "false")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"--city", "Washington", "--month", "June", "--day", "all", "--no-raw"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{
		"Only data for June was loaded",
		"The most common day of the week for a trip is: Thursday, Wednesday",
		"The most common hour for a trip to start is: 8am",
		"2 trips were between 14th & Belmont St NW to 15th & K St NW, which is the most popular journey.",
		"Trips were made by 1 Customer and 1 Subscriber user types",
		"No gender data exists.",
		"No year of birth data exists.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q\n%s", want, out.String())
		}
	}
}

func TestRootCommandRejectsBadFlags(t *testing.T) {
	t.Setenv("CITIES_FILE", "")
	t.Setenv("TRIP_SOURCE", "csv")

	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--city", "chicago", "--month", "july"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for illegal month")
	}
}
