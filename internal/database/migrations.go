package database

import (
	migrate "github.com/rubenv/sql-migrate"
)

type MigrateDirection = migrate.MigrationDirection

const (
	MigrateUp   = migrate.Up
	MigrateDown = migrate.Down

	migrationDialect = "sqlite3"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "0001_sessions",
			Up: []string{
				`CREATE TABLE IF NOT EXISTS sessions (
					id varchar(64) PRIMARY KEY,
					created_at datetime,
					updated_at datetime,
					deleted_at datetime,
					run_count integer NOT NULL DEFAULT 0,
					start_date date NOT NULL,
					last_seen_at datetime NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_sessions_deleted_at ON sessions (deleted_at)`,
				`CREATE INDEX IF NOT EXISTS idx_sessions_last_seen_at ON sessions (last_seen_at)`,
			},
			Down: []string{
				`DROP TABLE IF EXISTS sessions`,
			},
		},
		{
			Id: "0002_testing_records",
			Up: []string{
				`CREATE TABLE IF NOT EXISTS testing_records (
					id integer PRIMARY KEY AUTOINCREMENT,
					session_id varchar(64) NOT NULL,
					run integer NOT NULL,
					nhs_number bigint NOT NULL,
					date date NOT NULL,
					surname varchar(64),
					forename varchar(64),
					hospital_number varchar(8),
					date_of_birth date NOT NULL,
					postcode varchar(8),
					test_number varchar(12),
					test_result varchar(8) NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_testing_records_session_id ON testing_records (session_id)`,
			},
			Down: []string{
				`DROP TABLE IF EXISTS testing_records`,
			},
		},
	},
}

// Migrate applies (or with MigrateDown, reverts) every known migration.
func (s *DB) Migrate(direction MigrateDirection) error {
	log := s.log.Function("Migrate")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	applied, err := migrate.Exec(sqlDB, migrationDialect, migrations, direction)
	if err != nil {
		return log.Err("failed to apply migrations", err, "direction", direction)
	}

	log.Info("Applied migrations", "count", applied, "direction", direction)
	return nil
}

type MigrationStatus struct {
	ID      string
	Applied bool
}

func (s *DB) MigrationStatus() ([]MigrationStatus, error) {
	log := s.log.Function("MigrationStatus")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return nil, log.Err("failed to get database from GORM", err)
	}

	records, err := migrate.GetMigrationRecords(sqlDB, migrationDialect)
	if err != nil {
		return nil, log.Err("failed to read migration records", err)
	}

	applied := make(map[string]bool, len(records))
	for _, record := range records {
		applied[record.Id] = true
	}

	known, err := migrations.FindMigrations()
	if err != nil {
		return nil, log.Err("failed to list migrations", err)
	}

	statuses := make([]MigrationStatus, 0, len(known))
	for _, migration := range known {
		statuses = append(statuses, MigrationStatus{ID: migration.Id, Applied: applied[migration.Id]})
	}
	return statuses, nil
}
