package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logger := zerolog.Nop()
	root := newRootCmd(&logger)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestUnitTemplateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")

	_, err := run(t, "template", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "template should be xlsx (zip) file")
}

func TestUnitCommandUsageErrors(t *testing.T) {
	tests := map[string]struct {
		args []string
	}{
		"export without database": {
			args: []string{"export", "--database-url", ""},
		},
		"template to stdout": {
			args: []string{"template", "--out", "-"},
		},
		"send import without broker": {
			args: []string{"send-import", "--rabbitmq-url", "", "--spreadsheet-url", "https://files.test/p.xlsx"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, tt.args...)

			require.ErrorIs(t, err, errUsage)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestUnitSendImportRequiresSpreadsheetURL(t *testing.T) {
	_, err := run(t, "send-import", "--rabbitmq-url", "amqp://localhost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet-url")
}
