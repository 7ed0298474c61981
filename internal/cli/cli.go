// Package cli parses command-line arguments for the oadframe binary.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/oadframe/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command names accepted as the first positional argument.
const (
	CommandRun         = "run"
	CommandListModules = "list-modules"
	CommandListPlugins = "list-plugins"
	CommandGenConfig   = "gen-config"
)

// Command is one parsed invocation.
type Command struct {
	App app.Config

	// Name is one of the Command* constants.
	Name string

	// ConfigPath is the problem configuration file for 'run'.
	ConfigPath string

	// Distribution, FileName, and TargetPath parameterize 'gen-config'.
	Distribution string
	FileName     string
	TargetPath   string
}

// Parse processes command-line arguments. It returns a populated Command,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("oadframe", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
oadframe - An aircraft Overall Aircraft Design framework.

Usage:
  oadframe [options] run CONFIG_FILE
  oadframe [options] list-modules
  oadframe [options] list-plugins
  oadframe [options] gen-config TARGET_FILE

Commands:
  run           Assemble and run the problem described by a .yml/.yaml file.
  list-modules  List all registered services and providers.
  list-plugins  List all discovered plugin distributions.
  gen-config    Copy a distribution-provided configuration file to TARGET_FILE.

Options:
`)
		flagSet.PrintDefaults()
	}

	pluginsPathFlag := flagSet.String("plugins-path", "plugins", "Root directory scanned for plugin distributions. Empty disables discovery.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	distFlag := flagSet.String("dist", "", "Distribution name for gen-config. Optional when only one distribution is installed.")
	fileFlag := flagSet.String("file", "", "File name for gen-config. Optional when the distribution provides only one.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cmd := &Command{
		App: app.Config{
			PluginsPath: *pluginsPathFlag,
			LogFormat:   logFormat,
			LogLevel:    logLevel,
		},
		Name:         flagSet.Arg(0),
		Distribution: *distFlag,
		FileName:     *fileFlag,
	}

	switch cmd.Name {
	case CommandRun:
		if flagSet.NArg() < 2 {
			return nil, false, &ExitError{Code: 2, Message: "run: missing CONFIG_FILE argument"}
		}
		cmd.ConfigPath = flagSet.Arg(1)
	case CommandListModules, CommandListPlugins:
		// no further arguments
	case CommandGenConfig:
		if flagSet.NArg() < 2 {
			return nil, false, &ExitError{Code: 2, Message: "gen-config: missing TARGET_FILE argument"}
		}
		cmd.TargetPath = flagSet.Arg(1)
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cmd.Name)}
	}

	slog.Debug("CLI parser finished successfully.", "command", cmd.Name)
	return cmd, false, nil
}
