// FILE: loggen/src/internal/catalog/default.go
package catalog

import "loggen/src/internal/core"

var defaultComponents = []Component{
	{
		Name:   "backend",
		File:   "backend.log",
		Format: core.FormatText,
		Messages: []string{
			"User authentication succeeded.",
			"Database connection established.",
			"Cache miss for key user_123.",
			"Failed to retrieve data from API.",
			"Scheduled task completed successfully.",
			"Unexpected error occurred in processing request.",
		},
	},
	{
		Name:   "frontend",
		File:   "frontend.log",
		Format: core.FormatText,
		Messages: []string{
			"User clicked the login button.",
			"Page loaded successfully.",
			"JavaScript error on line 45.",
			"User session expired.",
			"Resource loaded: main.css.",
			"UI component rendered.",
		},
	},
	{
		Name:   "database",
		File:   "database.log",
		Format: core.FormatText,
		Messages: []string{
			"Query executed in 120ms.",
			"Database connection lost.",
			"Data backup completed.",
			"Failed to write to table orders.",
			"Index rebuilt successfully.",
			"Replication lag detected.",
		},
	},
	{
		Name:   "backend2",
		File:   "backend2.log",
		Format: core.FormatJSON,
		Messages: []string{
			"Processed transaction ID 78910.",
			"User profile updated successfully.",
			"Cache cleared for session ID abc123.",
			"Failed to send notification email.",
			"New API endpoint deployed.",
			"Scheduled maintenance task initiated.",
		},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(core.Levels(), defaultComponents)
	if err != nil {
		// Built-in definitions are static
		panic(err)
	}
	return c
}
