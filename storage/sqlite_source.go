package storage

import (
	"context"

	_ "modernc.org/sqlite"

	"bikeshare-stats/services"
	"bikeshare-stats/utils"
)

// SQLiteSource reads trips from a local SQLite database file.
type SQLiteSource struct {
	sqlSource
}

// NewSQLiteSource opens the database at path read-only.
func NewSQLiteSource(ctx context.Context, path string, retry *utils.RetryConfig, cleaner *services.Cleaner, logger *utils.Logger) (*SQLiteSource, error) {
	db, err := openSQL(ctx, "sqlite", "file:"+path+"?mode=ro", retry)
	if err != nil {
		return nil, err
	}

	return &SQLiteSource{sqlSource{
		db:      db,
		dialect: sqliteDialect,
		cleaner: cleaner,
		logger:  logger,
	}}, nil
}
