package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["personas"])
	assert.True(t, names["version"])
}

func TestVersionCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "version", cmd.Name())
	assert.NoError(t, cmd.RunE(cmd, nil))
}

func TestPersonasCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"personas"})
	require.NoError(t, err)
	assert.NoError(t, cmd.RunE(cmd, nil))
}
