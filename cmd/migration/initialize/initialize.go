package initialize

import (
	"pillar2/internal/database"
	"pillar2/internal/logger"
)

// InitializeTables applies pending migrations and fails when any known migration is still
// missing afterwards.
func InitializeTables(db database.DB, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing session tables")

	if err := db.Migrate(database.MigrateUp); err != nil {
		return log.Err("failed to apply migrations", err)
	}

	statuses, err := db.MigrationStatus()
	if err != nil {
		return log.Err("failed to read migration status", err)
	}

	for _, status := range statuses {
		if !status.Applied {
			return log.Error("migration not applied", "id", status.ID)
		}
	}

	log.Info("Table initialization complete", "migrations", len(statuses))
	return nil
}
