package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHelpNamesRealEnvVars(t *testing.T) {
	root := newRootCommand()

	// Every variable listed in the help must match what config actually
	// reads.
	for _, name := range []string{
		"ANTHROPIC_API_KEY",
		"TASKAGENT_DB_DIR",
		"TASKAGENT_DB_FILENAME",
		"TASKAGENT_MODEL",
		"TASKAGENT_API_BASE_URL",
		"PORT",
		"SECRET_KEY",
		"TASKAGENT_VERBOSE",
	} {
		assert.Contains(t, root.Long, name)
	}
	assert.NotContains(t, root.Long, "TASKAGENT_BASE_URL ", "stale variable name")
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newRootCommand()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	require.True(t, names["repl"])
	require.True(t, names["serve"])
}
