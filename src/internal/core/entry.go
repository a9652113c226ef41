// FILE: loggen/src/internal/core/entry.go
package core

import "time"

// Represents a single synthetic log record produced by a generator
type LogEntry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string

	// Only populated for components serialized as JSON
	TransactionID int
	UserID        int
}

// Reports whether the entry carries the JSON-only numeric fields
func (e LogEntry) HasIDs() bool {
	return e.TransactionID != 0 || e.UserID != 0
}
