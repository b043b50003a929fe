package main

import (
	"context"
	"fmt"
	"pillar2/cmd/migration/initialize"
	"pillar2/cmd/migration/seed"
	"pillar2/config"
	"pillar2/internal/database"
	"pillar2/internal/generator"
	"pillar2/internal/logger"
	"pillar2/internal/repositories"

	"github.com/spf13/cobra"
)

// openDatabase connects without migrating so each subcommand controls the schema itself.
func openDatabase() (database.DB, config.Config, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return database.DB{}, config.Config{}, err
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat, nil)

	db, err := database.Open(cfg)
	if err != nil {
		return database.DB{}, config.Config{}, err
	}

	return db, cfg, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := initialize.InitializeTables(db, logger.New("migrate")); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration, dropping all session data",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(database.MigrateDown); err != nil {
				return fmt.Errorf("migration rollback failed: %w", err)
			}

			if err := db.FlushAllCaches(context.Background()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := db.MigrationStatus()
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-30s %s\n", "MIGRATION", "STATUS")
			for _, s := range statuses {
				status := "pending"
				if s.Applied {
					status = "applied"
				}
				fmt.Fprintf(out, "%-30s %s\n", s.ID, status)
			}
			return nil
		},
	})

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Store a demo session with generated runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, _ := cmd.Flags().GetInt("runs")

			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := initialize.InitializeTables(db, logger.New("migrate")); err != nil {
				return err
			}

			id, err := seed.Seed(
				cmd.Context(),
				repositories.NewSession(db),
				generator.New(generator.NewFakerSource(cfg.GeneratorSeed)),
				runs,
				logger.New("migrate"),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded session %s\n", id)
			return nil
		},
	}
	seedCmd.Flags().Int("runs", 7, "Number of runs to generate")
	cmd.AddCommand(seedCmd)

	return cmd
}
