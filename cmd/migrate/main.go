package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/lexfirm/backoffice-api/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

// sourceDir is where "create" writes new migration files
const sourceDir = "./migrations"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the back office database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		dbCommand("up", "Apply all pending migrations", func(db *sql.DB) error {
			if err := goose.Up(db, "."); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println("Migrations completed successfully")
			return nil
		}),
		dbCommand("down", "Roll back the last migration", func(db *sql.DB) error {
			if err := goose.Down(db, "."); err != nil {
				return fmt.Errorf("failed to rollback migration: %w", err)
			}
			fmt.Println("Migration rolled back successfully")
			return nil
		}),
		dbCommand("status", "Show migration status", func(db *sql.DB) error {
			if err := goose.Status(db, "."); err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			return nil
		}),
		dbCommand("version", "Show the current schema version", func(db *sql.DB) error {
			version, err := goose.GetDBVersion(db)
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Printf("Current version: %d\n", version)
			return nil
		}),
		&cobra.Command{
			Use:   "create NAME",
			Short: "Create a new SQL migration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := goose.Create(nil, sourceDir, args[0], "sql"); err != nil {
					return fmt.Errorf("failed to create migration: %w", err)
				}
				fmt.Printf("Migration created: %s\n", args[0])
				return nil
			},
		},
	)
	return root
}

// dbCommand wraps fn with a connection to the configured postgres database
// and the embedded migration files
func dbCommand(use, short string, fn func(db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			goose.SetBaseFS(migrations.FS)
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("failed to set dialect: %w", err)
			}
			return fn(db)
		},
	}
}

func openDatabase() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Driver != "" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("migrations only run against postgres, got driver %q", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
