package commander

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// ErrSpreadsheetURLRequired is returned when import command has no spreadsheet URL.
var ErrSpreadsheetURLRequired = errors.New("spreadsheet URL is required")

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// ImportCommander sends import commands.
type ImportCommander struct {
	sender Sender
}

// NewImportCommander returns new ImportCommander using provided sender for sending messages.
func NewImportCommander(sender Sender) ImportCommander {
	return ImportCommander{
		sender: sender,
	}
}

// SendImportCommand sends import command.
func (c ImportCommander) SendImportCommand(ctx context.Context, cmd ImportCommand) error {
	if cmd.SpreadsheetURL == "" {
		return ErrSpreadsheetURLRequired
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal import command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
