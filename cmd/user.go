package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"MediTrack/database"
	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/services"
)

func newCreateUserCmd() *cobra.Command {
	var username, password, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.InitDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			users := services.NewUserService(repositories.NewUserRepository(db), nil)
			user, err := users.ValidateAndCreateUser(cmd.Context(), username, password, role)
			if err != nil {
				return err
			}
			log.Info().Uint("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("user created")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", models.RoleClinician, "admin or clinician")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
