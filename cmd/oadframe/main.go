package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/oadframe/internal/app"
	"github.com/vk/oadframe/internal/cli"
)

// main is the entrypoint for the oadframe application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) (err error) {
	command, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors (registration conflicts,
	// broken plugin manifests); recover to give the user a clean message.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()

	oadApp := app.NewApp(outW, &command.App, nil)

	switch command.Name {
	case cli.CommandRun:
		return oadApp.RunProblem(command.ConfigPath)
	case cli.CommandListModules:
		return oadApp.ListProviders()
	case cli.CommandListPlugins:
		return oadApp.ListPlugins()
	case cli.CommandGenConfig:
		return oadApp.GenerateConfiguration(command.Distribution, command.FileName, command.TargetPath)
	}
	return nil
}
