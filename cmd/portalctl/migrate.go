package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmrconsultoria/portal-os/internal/infrastructure/postgres"
)

func newMigrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Aplica o revierte las migraciones embebidas",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			log := env.log()
			if err := postgres.Migrate(cfg.DB.ConnectionString(), args[0]); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			log.Info().Str("direction", args[0]).Msg("migraciones aplicadas")
			return nil
		},
	}
}
