package cmd

import (
	"context"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-orders/config"
)

var (
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Run SQL migrations under db/migrations",
		Run:   runMigrate,
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "Roll back the latest migration instead of migrating up")
	migrateCmd.Flags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "SQL migrations directory")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := goose.OpenDBWithDriver("mysql", cfg.Database.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open database for migration")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	goose.SetTableName("schema_migrations")

	ctx := context.Background()
	command := "up"
	if migrateRollback {
		command = "down"
	}
	if err := goose.RunContext(ctx, command, db, migrateDir); err != nil {
		logrus.WithError(err).WithField("command", command).Fatal("Migration failed")
	}
	logrus.WithField("command", command).Info("Migration completed")
}
