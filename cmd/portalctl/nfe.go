package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appnfe "github.com/mmrconsultoria/portal-os/internal/application/nfe"
	infranfe "github.com/mmrconsultoria/portal-os/internal/infrastructure/nfe"
	infraxlsx "github.com/mmrconsultoria/portal-os/internal/infrastructure/xlsx"
)

func newNFeCmd(env *cliEnv) *cobra.Command {
	nfeCmd := &cobra.Command{
		Use:   "nfe",
		Short: "Utilidades de NF-e",
	}

	var out string
	export := &cobra.Command{
		Use:   "export <arquivo.xml|arquivo.zip>...",
		Short: "Convierte XML de NF-e (sueltos o en .zip) a la planilla Notas/Itens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := env.log()

			uploads := make([]appnfe.Upload, 0, len(args))
			for _, p := range args {
				data, err := os.ReadFile(p)
				if err != nil {
					return fmt.Errorf("leer %s: %w", p, err)
				}
				uploads = append(uploads, appnfe.Upload{Name: filepath.Base(p), Data: data})
			}

			uc := appnfe.NewImportUseCase(infranfe.NewCollector(), infranfe.NewParser(), infraxlsx.NewWriter(), log)
			res, err := uc.Import(cmd.Context(), uploads)
			if err != nil {
				return err
			}
			data, err := uc.Workbook(res)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}

			for _, e := range res.Errors {
				log.Warn().Str("file", e.File).Msg(e.Message)
			}
			log.Info().
				Int("xml", res.XMLCount).
				Int("notes", len(res.Notes)).
				Int("items", len(res.Items)).
				Str("output", out).
				Msg("planilha gerada")
			return nil
		},
	}
	export.Flags().StringVarP(&out, "output", "o", appnfe.ExportName, "archivo .xlsx de salida")

	nfeCmd.AddCommand(export)
	return nfeCmd
}
