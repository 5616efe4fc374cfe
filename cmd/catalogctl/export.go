package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/MichalMitros/catalog-importer/internal/exporter"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	databaseURL    string
	out            string
	includeReviews bool
}

func newExportCmd(logger *zerolog.Logger) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog as SQL script",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.databaseURL == "" {
				return usageError("--database-url or DATABASE_URL is required")
			}

			db, err := sql.Open("postgres", opts.databaseURL)
			if err != nil {
				return fmt.Errorf("can't open Postgres connection: %w", err)
			}
			defer db.Close()

			var buf bytes.Buffer
			err = exporter.NewExporter(storage.NewPostgres(db)).
				Export(cmd.Context(), &buf, exporter.Options{IncludeReviews: opts.includeReviews})
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), opts.out, buf.Bytes()); err != nil {
				return err
			}

			logger.Info().
				Str("out", opts.out).
				Int("bytes", buf.Len()).
				Msg("catalog exported")

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	cmd.Flags().StringVar(&opts.out, "out", "-", "Output file, - for stdout")
	cmd.Flags().BoolVar(&opts.includeReviews, "include-reviews", false, "Export product reviews too")

	return cmd
}

// writeOutput writes data to file or to stdout when path is "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" || path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("can't write %s: %w", path, err)
	}
	return nil
}
