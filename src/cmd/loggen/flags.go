// FILE: loggen/src/cmd/loggen/flags.go
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FlagConfig holds the flags handled before configuration loading. Everything
// else is passed to the config loader as --key.path=value overrides.
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	ShowHelp    bool
	Quiet       bool
}

// parseFlags extracts the process-level flags and returns the remaining args.
func parseFlags(args []string) (*FlagConfig, []string, error) {
	fc := &FlagConfig{}
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch name {
		case "config", "c":
			if !hasValue {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					return nil, nil, fmt.Errorf("flag --%s requires a file path", name)
				}
				i++
				value = args[i]
			}
			if value == "" {
				return nil, nil, fmt.Errorf("flag --%s requires a file path", name)
			}
			fc.ConfigFile = value

		case "version", "v":
			b, err := boolFlag(name, value, hasValue)
			if err != nil {
				return nil, nil, err
			}
			fc.ShowVersion = b

		case "help", "h":
			b, err := boolFlag(name, value, hasValue)
			if err != nil {
				return nil, nil, err
			}
			fc.ShowHelp = b

		case "quiet", "q":
			b, err := boolFlag(name, value, hasValue)
			if err != nil {
				return nil, nil, err
			}
			fc.Quiet = b

		default:
			rest = append(rest, arg)
		}
	}

	return fc, rest, nil
}

func boolFlag(name, value string, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value for --%s: %s", name, value)
	}
	return b, nil
}

func printUsage(w io.Writer, program string) {
	fmt.Fprintf(w, "loggen - Synthetic multi-component log generator\n\n")
	fmt.Fprintf(w, "Usage: %s [options] [--key.path=value ...]\n\n", program)

	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  -c, --config <file>   Config file path (default: loggen.toml)\n")
	fmt.Fprintf(w, "  -q, --quiet           Suppress operational output\n")
	fmt.Fprintf(w, "  -v, --version         Show version information\n")
	fmt.Fprintf(w, "  -h, --help            Show this help\n")

	fmt.Fprintf(w, "\nConfiguration overrides:\n")
	fmt.Fprintf(w, "  --log_dir=./shared/logs\n")
	fmt.Fprintf(w, "  --catalog_file=catalog.yaml\n")
	fmt.Fprintf(w, "  --generator.min_delay_ms=1000 --generator.max_delay_ms=5000\n")
	fmt.Fprintf(w, "  --generator.max_entries_per_second=50 --generator.seed=42\n")
	fmt.Fprintf(w, "  --tcp.enabled=true --tcp.port=9514\n")
	fmt.Fprintf(w, "  --status.enabled=true --status.port=9515\n")
	fmt.Fprintf(w, "  --logging.output=stderr --logging.level=debug\n")

	fmt.Fprintf(w, "\nEnvironment Variables:\n")
	fmt.Fprintf(w, "  LOGGEN_CONFIG_FILE              Config file path\n")
	fmt.Fprintf(w, "  LOGGEN_CONFIG_DIR               Config directory\n")
	fmt.Fprintf(w, "  LOGGEN_<SECTION>_<KEY>          Any configuration key, e.g. LOGGEN_GENERATOR_SEED\n")
}
