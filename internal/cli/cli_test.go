package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	cmd, shouldExit, err := Parse([]string{"list-modules"}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, CommandListModules, cmd.Name)
	assert.Equal(t, "plugins", cmd.App.PluginsPath)
	assert.Equal(t, "text", cmd.App.LogFormat)
	assert.Equal(t, "info", cmd.App.LogLevel)
}

func TestParse_RunCommand(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	cmd, shouldExit, err := Parse([]string{"-log-level", "debug", "run", "problem.yml"}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, CommandRun, cmd.Name)
	assert.Equal(t, "problem.yml", cmd.ConfigPath)
	assert.Equal(t, "debug", cmd.App.LogLevel)
}

func TestParse_RunWithoutConfigFile(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	_, _, err := Parse([]string{"run"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "CONFIG_FILE")
}

func TestParse_GenConfig(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	cmd, _, err := Parse([]string{"-dist", "my-dist", "-file", "sample.yml", "gen-config", "target.yml"}, &out)

	require.NoError(t, err)
	assert.Equal(t, CommandGenConfig, cmd.Name)
	assert.Equal(t, "my-dist", cmd.Distribution)
	assert.Equal(t, "sample.yml", cmd.FileName)
	assert.Equal(t, "target.yml", cmd.TargetPath)
}

func TestParse_UnknownCommand(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	_, _, err := Parse([]string{"frobnicate"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "frobnicate")
}

func TestParse_InvalidLogSettings(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	_, _, err := Parse([]string{"-log-format", "xml", "list-modules"}, &out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-format")

	_, _, err = Parse([]string{"-log-level", "loud", "list-modules"}, &out)
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestParse_NoArgumentsPrintsUsage(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	_, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_HelpFlag(t *testing.T) {
	t.Parallel()
	var out strings.Builder

	_, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "list-plugins")
}
