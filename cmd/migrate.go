package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mhagyesh07/ITCC-System/internal/config"
	"github.com/mhagyesh07/ITCC-System/internal/database"
	"github.com/mhagyesh07/ITCC-System/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply all pending database migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	l := logger.New(cfg.Env)

	if err := database.MigrateUp(cfg.DBURL); err != nil {
		return err
	}
	l.Info().Msg("migrations applied")
	return nil
}
