// FILE: loggen/src/internal/format/txt.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"loggen/src/internal/config"
	"loggen/src/internal/core"

	"github.com/lixenwraith/log"
)

// Produces plain-text lines using templates
type TxtFormatter struct {
	config   *config.FormatConfig
	template *template.Template
	logger   *log.Logger
}

// Creates a new text formatter
func NewTxtFormatter(opts *config.FormatConfig, logger *log.Logger) (*TxtFormatter, error) {
	if opts == nil {
		opts = config.DefaultFormatConfig()
	}

	f := &TxtFormatter{
		config: opts,
		logger: logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.config.TimestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmplText := opts.TextTemplate
	if tmplText == "" {
		tmplText = config.DefaultTextTemplate
	}

	tmpl, err := template.New("entry").Funcs(funcMap).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Formats the log entry using the template
func (f *TxtFormatter) Format(entry core.LogEntry) ([]byte, error) {
	data := map[string]any{
		"Timestamp":     entry.Time,
		"Level":         entry.Level,
		"Component":     entry.Component,
		"Message":       entry.Message,
		"TransactionID": entry.TransactionID,
		"UserID":        entry.UserID,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "txt_formatter",
			"error", err)
		return f.fallback(entry), nil
	}

	// Lines must stay single-line
	result := bytes.TrimRight(buf.Bytes(), "\r\n")
	if bytes.ContainsAny(result, "\r\n") {
		f.logger.Debug("msg", "Template produced a multi-line entry, using fallback",
			"component", "txt_formatter")
		return f.fallback(entry), nil
	}
	return append(result, '\n'), nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// fallback renders the default layout with line breaks in the message flattened
func (f *TxtFormatter) fallback(entry core.LogEntry) []byte {
	return []byte(fmt.Sprintf("%s  level=%s component=%s %s\n",
		entry.Time.Format(f.config.TimestampFormat),
		entry.Level,
		entry.Component,
		lineBreaks.Replace(entry.Message)))
}

// Returns the formatter name
func (f *TxtFormatter) Name() string {
	return core.FormatText
}
