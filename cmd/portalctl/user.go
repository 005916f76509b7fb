package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmrconsultoria/portal-os/internal/application/auth"
	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/infrastructure/postgres"
)

func newUserCmd(env *cliEnv) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Gestión de usuarios del portal",
	}

	var in dto.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario (el primer admin de una empresa se crea así)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			log := env.log()

			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			u, err := uc.CreateUser(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("crear usuario: %w", err)
			}
			log.Info().
				Str("id", u.ID).
				Str("company", u.CompanyCode).
				Str("username", u.Username).
				Str("role", u.Role).
				Msg("usuario creado")
			return nil
		},
	}
	create.Flags().StringVar(&in.CompanyCode, "company", "", "código de empresa")
	create.Flags().StringVar(&in.Username, "username", "", "nombre de usuario")
	create.Flags().StringVar(&in.Password, "password", "", "contraseña en texto plano")
	create.Flags().StringVar(&in.Role, "role", entity.RoleBasic, "admin | basic")
	for _, f := range []string{"company", "username", "password"} {
		_ = create.MarkFlagRequired(f)
	}

	userCmd.AddCommand(create)
	return userCmd
}
