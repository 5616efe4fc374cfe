package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// errUsage marks invalid flag combinations.
var errUsage = errors.New("invalid usage")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newRootCmd(&logger).ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(exitCode(err))
	}
}

func newRootCmd(logger *zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operator tools of catalog importer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newExportCmd(logger),
		newTemplateCmd(logger),
		newSendImportCmd(logger),
	)

	return root
}

func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
