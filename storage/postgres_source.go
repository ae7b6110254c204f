package storage

import (
	"context"

	_ "github.com/lib/pq"

	"bikeshare-stats/services"
	"bikeshare-stats/utils"
)

// PostgresSource reads trips from PostgreSQL.
type PostgresSource struct {
	sqlSource
}

// NewPostgresSource opens a connection to PostgreSQL and returns a
// ready-to-use PostgresSource. Times and numbers are read back as text.
func NewPostgresSource(ctx context.Context, dsn string, retry *utils.RetryConfig, cleaner *services.Cleaner, logger *utils.Logger) (*PostgresSource, error) {
	db, err := openSQL(ctx, "postgres", dsn, retry)
	if err != nil {
		return nil, err
	}

	return &PostgresSource{sqlSource{
		db:      db,
		dialect: postgresDialect,
		cleaner: cleaner,
		logger:  logger,
	}}, nil
}
