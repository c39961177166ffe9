package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-auth-backend/internal/repo"
	"github.com/tbourn/go-auth-backend/internal/sysutil"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long:  `Apply the schema to the SQLite database at --db (or $DB_PATH) and exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, sysutil.FirstNonEmpty(dbPath, getenvDBPath()))
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite path or DSN")
	return cmd
}

func runMigrate(cmd *cobra.Command, path string) error {
	db, err := repo.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := repo.AutoMigrate(db); err != nil {
		return err
	}
	cmd.Printf("schema up to date: %s\n", path)
	return nil
}

func getenvDBPath() string {
	return sysutil.FirstNonEmpty(os.Getenv("DB_PATH"), "auth.db")
}
