// FILE: loggen/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"

	"loggen/src/internal/config"
	"loggen/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces one JSON document per entry.
type JSONFormatter struct {
	config *config.FormatConfig
	logger *log.Logger
}

// jsonRecord fixes the key order of the serialized document.
type jsonRecord struct {
	Timestamp     string `json:"timestamp"`
	Level         string `json:"level"`
	Component     string `json:"component"`
	Message       string `json:"message"`
	TransactionID int    `json:"transaction_id"`
	UserID        int    `json:"user_id"`
}

// NewJSONFormatter creates a new JSON formatter from configuration options.
func NewJSONFormatter(opts *config.FormatConfig, logger *log.Logger) (*JSONFormatter, error) {
	if opts == nil {
		opts = config.DefaultFormatConfig()
	}
	return &JSONFormatter{
		config: opts,
		logger: logger,
	}, nil
}

// Format transforms a single LogEntry into a JSON line.
func (f *JSONFormatter) Format(entry core.LogEntry) ([]byte, error) {
	record := jsonRecord{
		Timestamp:     entry.Time.Format(f.config.TimestampFormat),
		Level:         entry.Level,
		Component:     entry.Component,
		Message:       entry.Message,
		TransactionID: entry.TransactionID,
		UserID:        entry.UserID,
	}

	result, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// Add newline
	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return core.FormatJSON
}
