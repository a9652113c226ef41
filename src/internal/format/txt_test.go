// FILE: loggen/src/internal/format/txt_test.go
package format

import (
	"strings"
	"testing"
	"time"

	"loggen/src/internal/config"
	"loggen/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTxtFormatter(t *testing.T) {
	logger := newTestLogger()
	t.Run("InvalidTemplate", func(t *testing.T) {
		opts := config.DefaultFormatConfig()
		opts.TextTemplate = "{{ .Timestamp | InvalidFunc }}"
		_, err := NewTxtFormatter(opts, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid template")
	})
}

func TestTxtFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	testTime := time.Date(2023, 10, 27, 10, 30, 0, 500000000, time.UTC)
	entry := core.LogEntry{
		Time:      testTime,
		Level:     "WARNING",
		Component: "database",
		Message:   "Replication lag detected.",
	}

	t.Run("DefaultTemplate", func(t *testing.T) {
		formatter, err := NewTxtFormatter(nil, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)

		expected := "2023-10-27T10:30:00.500000  level=WARNING component=database Replication lag detected.\n"
		assert.Equal(t, expected, string(output))
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		opts := config.DefaultFormatConfig()
		opts.TextTemplate = "{{.Level | ToLower}}:{{.Component}}:{{.Message}}\n"
		formatter, err := NewTxtFormatter(opts, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)

		assert.Equal(t, "warning:database:Replication lag detected.\n", string(output))
	})

	t.Run("FallbackOnExecutionError", func(t *testing.T) {
		opts := config.DefaultFormatConfig()
		opts.TextTemplate = "{{.Timestamp.Missing}}"
		formatter, err := NewTxtFormatter(opts, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)

		expected := "2023-10-27T10:30:00.500000  level=WARNING component=database Replication lag detected.\n"
		assert.Equal(t, expected, string(output))
	})

	t.Run("FallbackOnInteriorNewline", func(t *testing.T) {
		opts := config.DefaultFormatConfig()
		opts.TextTemplate = "{{.Level}}\n{{.Message}}"
		formatter, err := NewTxtFormatter(opts, logger)
		require.NoError(t, err)

		output, err := formatter.Format(entry)
		require.NoError(t, err)

		expected := "2023-10-27T10:30:00.500000  level=WARNING component=database Replication lag detected.\n"
		assert.Equal(t, expected, string(output))
	})

	t.Run("MessageLineBreaksFlattened", func(t *testing.T) {
		formatter, err := NewTxtFormatter(nil, logger)
		require.NoError(t, err)

		multi := entry
		multi.Message = "first\nsecond\r\nthird"
		output, err := formatter.Format(multi)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(string(output), "\n"))
		assert.NotContains(t, string(output), "\r")
		assert.True(t, strings.HasSuffix(string(output), "component=database first second third\n"))
	})
}
