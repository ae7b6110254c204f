package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"bikeshare-stats/config"
	"bikeshare-stats/utils"
)

// NewRootCommand returns the bikeshare-stats command. With --city, --month
// and --day it runs a single analysis; otherwise it prompts for filters
// and loops until the user declines to restart.
func NewRootCommand() *cobra.Command {
	var (
		city, month, day string
		asJSON           bool
		noRaw            bool
	)

	cmd := &cobra.Command{
		Use:           "bikeshare-stats",
		Short:         "Descriptive statistics over US bike-share trip logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := utils.NewLoggerTo(cmd.ErrOrStderr(), cfg.Debug)

			source, err := newSource(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("Failed to open %s trip source: %v", cfg.TripSource, err)
				return err
			}
			defer source.Close()

			app := NewApp(cfg, logger, source, cmd.OutOrStdout(), asJSON)
			prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)

			if cmd.Flags().Changed("city") || cmd.Flags().Changed("month") || cmd.Flags().Changed("day") {
				city, month, day = normaliseCity(city), normaliseMonth(month), normaliseDay(day)
				if err := validateFlags(prompter, city, month, day); err != nil {
					return err
				}
				set, err := app.Analyze(cmd.Context(), city, month, day)
				if err != nil || noRaw || asJSON {
					return err
				}
				return ignoreEOF(app.Page(set, prompter))
			}

			return ignoreEOF(interactive(cmd, app, prompter, noRaw || asJSON))
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city to analyse")
	cmd.Flags().StringVar(&month, "month", config.AllMonths, "month name, or \"all\"")
	cmd.Flags().StringVar(&day, "day", config.AllDays, "weekday name, or \"All\"")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noRaw, "no-raw", false, "do not offer to page through raw trips")

	return cmd
}

func interactive(cmd *cobra.Command, app *App, p *Prompter, noRaw bool) error {
	for {
		city, month, day, err := p.Filters()
		if err != nil {
			return err
		}

		set, err := app.Analyze(cmd.Context(), city, month, day)
		if err != nil {
			app.logger.Error("%v", err)
		} else if !noRaw {
			if err := app.Page(set, p); err != nil {
				return err
			}
		}

		again, err := p.Confirm("\nWould you like to restart? Enter yes or no.\n")
		if err != nil || !again {
			return err
		}
	}
}

func validateFlags(p *Prompter, city, month, day string) error {
	switch {
	case !p.ValidCity(city):
		return fmt.Errorf("unknown city %q (choose %s)", city, joinOr(p.cities))
	case !p.ValidMonth(month):
		return fmt.Errorf("unknown month %q (choose %s)", month, joinOr(append(slices.Clone(p.months), config.AllMonths)))
	case !p.ValidDay(day):
		return fmt.Errorf("unknown day %q (choose %s)", day, joinOr(append(slices.Clone(p.days), config.AllDays)))
	}
	return nil
}

// ignoreEOF treats closed input as the user leaving.
func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}
