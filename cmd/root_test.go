package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRunCommandRegistered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "run" {
			found = true
		}
	}
	assert.True(t, found, "run subcommand should be registered on the root command")
}

func TestRunCommandRequiresGridAndConfig(t *testing.T) {
	grid := runCmd.Flags().Lookup("grid")
	assert.NotNil(t, grid)
	assert.Equal(t, []string{"true"}, grid.Annotations[cobra.BashCompOneRequiredFlag])
	cfg := runCmd.Flags().Lookup("config")
	assert.NotNil(t, cfg)
	assert.Equal(t, []string{"true"}, cfg.Annotations[cobra.BashCompOneRequiredFlag])
}
