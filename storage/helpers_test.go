package storage

import (
	"io"

	"bikeshare-stats/services"
	"bikeshare-stats/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, false) }

func newTestCleaner() *services.Cleaner { return services.NewCleaner(newTestLogger()) }
