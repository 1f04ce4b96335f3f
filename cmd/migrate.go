package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"MediTrack/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// InitDB migrates on connect.
			if _, err := database.InitDB(cmd.Context(), cfg); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
