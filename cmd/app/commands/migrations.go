package commands

import (
	"fmt"
	"log/slog"

	"github.com/allisson/credseal/internal/database"
)

// RunMigrations applies the embedded migrations for driver to the database
// at connectionString.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	if _, err := database.MigrationsDir(driver); err != nil {
		return err
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	db, err := database.Connect(database.Config{
		Driver:             driver,
		ConnectionString:   connectionString,
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database", slog.Any("error", closeErr))
		}
	}()

	return database.Migrate(db, driver, logger)
}
