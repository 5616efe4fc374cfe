package main

import (
	"github.com/MichalMitros/catalog-importer/internal/decoder"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newTemplateCmd(logger *zerolog.Logger) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write xlsx import template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "-" {
				return usageError("template is binary xlsx, --out must be a file")
			}

			workbook, err := decoder.Template()
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), out, workbook); err != nil {
				return err
			}

			logger.Info().Str("out", out).Msg("import template written")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "import-template.xlsx", "Output xlsx file")

	return cmd
}
