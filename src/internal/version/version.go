// FILE: loggen/src/internal/version/version.go
package version

import "fmt"

var (
	// Version is set at build time via -ldflags "-X loggen/src/internal/version.Version=..."
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String returns the version with build metadata.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

// Short returns just the version tag.
func Short() string {
	return Version
}

// Banner is printed by --version.
func Banner() string {
	return fmt.Sprintf("loggen %s", String())
}
