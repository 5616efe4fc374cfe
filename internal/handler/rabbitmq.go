package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"

	"github.com/MichalMitros/catalog-importer/internal/importer"
	"github.com/MichalMitros/catalog-importer/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-importer/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Submitter --filename submitter.go

// Fetcher downloads files from URLs.
type Fetcher interface {
	Fetch(ctx context.Context, url string, limit int64) ([]byte, error)
}

// Submitter starts batch imports.
type Submitter interface {
	Submit(ctx context.Context, req importer.Request) (string, error)
}

// RMQHandler handles import commands received from RMQ.
type RMQHandler struct {
	rmq       *rabbitmq.RabbitMQ
	fetcher   Fetcher
	submitter Submitter
	maxBytes  int64
	logger    *zerolog.Logger
}

// NewRMQHandler returns new RMQHandler. maxBytes limits size of every fetched file.
func NewRMQHandler(
	rmq *rabbitmq.RabbitMQ,
	fetcher Fetcher,
	submitter Submitter,
	maxBytes int64,
	logger *zerolog.Logger,
) *RMQHandler {
	return &RMQHandler{
		rmq:       rmq,
		fetcher:   fetcher,
		submitter: submitter,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// Start starts consuming and handling import commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.HandleMessage)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// HandleMessage decodes import command, downloads its files and submits import.
// It returns once the import is registered, not when it's finished.
func (h *RMQHandler) HandleMessage(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}
	if cmd.SpreadsheetURL == "" {
		return commander.ErrSpreadsheetURLRequired
	}

	spreadsheet, err := h.fetcher.Fetch(ctx, cmd.SpreadsheetURL, h.maxBytes)
	if err != nil {
		return fmt.Errorf("can't fetch spreadsheet: %w", err)
	}

	var archive []byte
	if cmd.ArchiveURL != "" {
		if archive, err = h.fetcher.Fetch(ctx, cmd.ArchiveURL, h.maxBytes); err != nil {
			return fmt.Errorf("can't fetch image archive: %w", err)
		}
	}

	taskID, err := h.submitter.Submit(ctx, importer.Request{
		SpreadsheetName:         spreadsheetName(cmd),
		Spreadsheet:             spreadsheet,
		Archive:                 archive,
		CategoryID:              cmd.CategoryID,
		ReviewCount:             cmd.ReviewCount,
		ConfirmSyntheticReviews: cmd.ConfirmSyntheticReviews,
		PositionalImages:        cmd.PositionalImages,
	})
	if err != nil {
		return fmt.Errorf("can't submit import: %w", err)
	}

	h.logger.Info().
		Str("taskId", taskID).
		Str("spreadsheetUrl", cmd.SpreadsheetURL).
		Msg("import submitted")

	return nil
}

func decodeMessage(msg []byte) (*commander.ImportCommand, error) {
	var cmd commander.ImportCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode import command: %w", err)
	}

	return &cmd, nil
}

// spreadsheetName falls back to last segment of URL path so format can be detected from extension.
func spreadsheetName(cmd *commander.ImportCommand) string {
	if cmd.SpreadsheetName != "" {
		return cmd.SpreadsheetName
	}
	u, err := url.Parse(cmd.SpreadsheetURL)
	if err != nil {
		return ""
	}
	if name := path.Base(u.Path); name != "/" && name != "." {
		return name
	}
	return ""
}
