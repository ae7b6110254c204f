package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"bikeshare-stats/config"
	"bikeshare-stats/models"
	"bikeshare-stats/services"
	"bikeshare-stats/storage"
	"bikeshare-stats/utils"
)

// App wires a record source to the filter, statistics and printer.
type App struct {
	cfg     *config.Config
	logger  *utils.Logger
	source  storage.TripSource
	filter  *services.Filter
	stats   *services.StatsService
	printer *services.Printer
	asJSON  bool
}

// NewApp builds an App around source. Output goes to out.
func NewApp(cfg *config.Config, logger *utils.Logger, source storage.TripSource, out io.Writer, asJSON bool) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		source:  source,
		filter:  services.NewFilter(cfg.Months, cfg.Days),
		stats:   services.NewStatsService(logger, cfg.Months),
		printer: services.NewPrinter(out),
		asJSON:  asJSON,
	}
}

// Analyze loads city, applies the month and day filters and prints the
// report. It returns the filtered set for paging.
func (a *App) Analyze(ctx context.Context, city, month, day string) (*models.RecordSet, error) {
	all, err := a.source.Load(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", city, err)
	}

	set := a.filter.Apply(all, month, day)
	a.logger.Info("Analysing %d of %d trips for %s (month: %s, day: %s)", set.Len(), all.Len(), city, month, day)

	report := a.stats.Generate(set, month, day)
	if a.asJSON {
		return set, a.printer.PrintJSON(report)
	}
	a.printer.Print(report)
	return set, nil
}

// Page shows set PageSize trips at a time for as long as the user asks.
func (a *App) Page(set *models.RecordSet, p *Prompter) error {
	size := a.cfg.PageSize
	if size < 1 {
		size = 5
	}

	question := fmt.Sprintf("Would you like to see %d rows of data?  Answer yes or no. \n", size)
	for offset := 0; offset < set.Len(); offset += size {
		more, err := p.Confirm(question)
		if err != nil || !more {
			return err
		}
		a.printer.PrintTrips(set.Page(offset, size), offset)
		question = fmt.Sprintf("Would you like to see the next %d rows of data?    Answer yes or no. \n", size)
	}
	return nil
}

// newSource builds the configured record source, wrapped in the city cache.
func newSource(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.TripSource, error) {
	cleaner := services.NewCleaner(logger)
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.ConnectRetries,
		BaseDelay:   500 * time.Millisecond,
		Logger:      logger,
	}

	var (
		src storage.TripSource
		err error
	)
	switch cfg.TripSource {
	case "sqlite":
		src, err = storage.NewSQLiteSource(ctx, cfg.SQLitePath, retry, cleaner, logger)
	case "postgres":
		src, err = storage.NewPostgresSource(ctx, cfg.DSN(), retry, cleaner, logger)
	default:
		src = storage.NewCSVSource(cfg.CityPath, cleaner, logger)
	}
	if err != nil {
		return nil, err
	}

	return storage.NewCachedSource(src, cfg.CacheSize, logger), nil
}
