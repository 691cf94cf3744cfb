package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/database"
	"github.com/at-ishikawa/adaptlearn/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the MySQL schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()
			return database.Migrate(db, schemas.Migrations, schemas.MigrationsDir)
		},
	}
}
