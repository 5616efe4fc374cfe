package main

import (
	"fmt"
	"os"

	"github.com/MichalMitros/catalog-importer/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-importer/pkg/v1/commander"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type sendImportOptions struct {
	rabbitMQURL string
	exchange    string
	routingKey  string
	command     commander.ImportCommand
}

func newSendImportCmd(logger *zerolog.Logger) *cobra.Command {
	var opts sendImportOptions

	cmd := &cobra.Command{
		Use:   "send-import",
		Short: "Publish import command for spreadsheet (and image archive) available under URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.rabbitMQURL == "" {
				return usageError("--rabbitmq-url or RABBITMQ_URL is required")
			}

			connection, err := amqp.Dial(opts.rabbitMQURL)
			if err != nil {
				return fmt.Errorf("can't open RabbitMQ connection: %w", err)
			}
			defer connection.Close()

			rmq, err := rabbitmq.NewRabbitMQ(connection, opts.exchange)
			if err != nil {
				return err
			}
			defer rmq.Close()

			publisher := commander.NewImportCommander(commander.NewRabbitMQSender(rmq, opts.routingKey))
			if err := publisher.SendImportCommand(cmd.Context(), opts.command); err != nil {
				return fmt.Errorf("can't publish import command: %w", err)
			}

			logger.Info().
				Str("spreadsheetUrl", opts.command.SpreadsheetURL).
				Str("routingKey", opts.routingKey).
				Msg("import command sent")

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.rabbitMQURL, "rabbitmq-url", os.Getenv("RABBITMQ_URL"), "RabbitMQ connection URL")
	cmd.Flags().StringVar(&opts.exchange, "exchange", envOr("RABBITMQ_EXCHANGE", "catalog-ex"), "Exchange of importer commands")
	cmd.Flags().StringVar(&opts.routingKey, "routing-key", envOr("RABBITMQ_ROUTING_KEY", commander.DefaultRoutingKey), "Routing key of importer commands")

	cmd.Flags().StringVar(&opts.command.SpreadsheetURL, "spreadsheet-url", "", "URL of xlsx or csv spreadsheet (required)")
	cmd.Flags().StringVar(&opts.command.SpreadsheetName, "spreadsheet-name", "", "File name used to detect spreadsheet format")
	cmd.Flags().StringVar(&opts.command.ArchiveURL, "archive-url", "", "URL of zip archive with product images")
	cmd.Flags().IntVar(&opts.command.CategoryID, "category-id", 0, "Category of imported products, importer default when 0")
	cmd.Flags().IntVar(&opts.command.ReviewCount, "review-count", 0, "Synthetic reviews per product")
	cmd.Flags().BoolVar(&opts.command.ConfirmSyntheticReviews, "confirm-synthetic-reviews", false, "Confirm synthetic review generation")
	cmd.Flags().BoolVar(&opts.command.PositionalImages, "positional-images", false, "Assign archive images by row position when rows reference none")

	_ = cmd.MarkFlagRequired("spreadsheet-url")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
