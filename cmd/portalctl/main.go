// portalctl tareas de operación del portal: migraciones, alta de usuarios y
// conversión de XML NF-e a planilla sin pasar por la API.
//
// Uso:
//
//	portalctl migrate up
//	portalctl user create --company 3377 --username ana --password ... --role admin
//	portalctl nfe export notas.zip extra.xml -o XML_NFe_Importados.xlsx
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mmrconsultoria/portal-os/pkg/config"
	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Herramientas de operación del Portal OS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")

	env := &cliEnv{
		log: func() *logger.Logger {
			lvl := "info"
			if verbose {
				lvl = "debug"
			}
			return logger.New(logger.Config{Env: "development", Level: lvl, Out: os.Stderr})
		},
		config: config.Load,
	}
	root.AddCommand(newMigrateCmd(env), newUserCmd(env), newNFeCmd(env))
	return root
}

// cliEnv dependencias perezosas: la configuración solo se lee en los comandos que la usan.
type cliEnv struct {
	log    func() *logger.Logger
	config func() (*config.Config, error)
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		logger.New(logger.Config{Env: "development", Out: os.Stderr}).
			Error().Err(err).Msg("comando fallido")
		os.Exit(1)
	}
}
