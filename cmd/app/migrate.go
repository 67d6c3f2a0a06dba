package main

import (
	"database/sql"
	"fmt"

	"workorders/internal/adapters/out/postgres/migrations"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(*cobra.Command, []string) error {
				return withMigrator(func(m *migrations.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every applied migration",
			RunE: func(*cobra.Command, []string) error {
				return withMigrator(func(m *migrations.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(c *cobra.Command, _ []string) error {
				return withMigrator(func(m *migrations.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return err
				})
			},
		},
	)
	return migrate
}

// withMigrator runs fn against a dedicated connection that is closed afterwards.
func withMigrator(fn func(*migrations.Migrator) error) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	migrator, err := migrations.New(db, logger)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() { _ = migrator.Close() }()

	return fn(migrator)
}
