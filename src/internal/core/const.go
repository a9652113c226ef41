// FILE: loggen/src/internal/core/const.go
package core

import "time"

// Severity levels shared by all components
const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// Inclusive ranges of the numeric fields attached to JSON entries
const (
	TransactionIDMin = 10000
	TransactionIDMax = 99999
	UserIDMin        = 1000
	UserIDMax        = 9999
)

// Output formats a component can be serialized with
const (
	FormatText = "txt"
	FormatJSON = "json"
)

const (
	DefaultLogDir          = "./shared/logs"
	DefaultMinDelay        = 1 * time.Second
	DefaultMaxDelay        = 5 * time.Second
	DefaultTimestampFormat = "2006-01-02T15:04:05.000000"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultStatusInterval  = 30 * time.Second
)

// Levels returns the fixed severity set in ascending order.
func Levels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
}
