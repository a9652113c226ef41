// FILE: loggen/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// LoadWithCLI builds the configuration from defaults, the TOML file, LOGGEN_*
// environment variables and --key.path=value arguments, highest priority last.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGGEN_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		// An explicitly named file must exist
		if os.Getenv("LOGGEN_CONFIG_FILE") != "" {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}
	if cfg == nil {
		return nil, fmt.Errorf("failed to load config: builder returned no configuration")
	}

	finalConfig := &Config{}
	if err := cfg.Scan("", finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	if err := validateConfig(finalConfig); err != nil {
		return nil, err
	}
	return finalConfig, nil
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "LOGGEN_" + env
	return env
}

// GetConfigPath resolves the config file from LOGGEN_CONFIG_FILE and LOGGEN_CONFIG_DIR
func GetConfigPath() string {
	if configFile := os.Getenv("LOGGEN_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGGEN_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGGEN_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "loggen.toml")
	}

	return "loggen.toml"
}
