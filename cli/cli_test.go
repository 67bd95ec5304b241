package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/fixbuttons/cli"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := cli.ParseArgs(nil)

	require.NoError(t, err)
	assert.Equal(t, &cli.Config{}, cfg)
}

func TestParseArgsShorthands(t *testing.T) {
	cfg, err := cli.ParseArgs([]string{"-n", "-c", "-v", "--no-animation"})

	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Copy)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoAnimation)

	cfg, err = cli.ParseArgs([]string{"-H"})
	require.NoError(t, err)
	assert.True(t, cfg.History)
}

func TestParseArgsRejects(t *testing.T) {
	tests := map[string][]string{
		"undo and redo":       {"-u", "-r"},
		"dry-run with undo":   {"--dry-run", "--undo"},
		"copy without dryrun": {"--copy"},
		"history with undo":   {"-H", "-u"},
		"positional path":     {"other.tsx"},
		"unknown flag":        {"--target=x"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := cli.ParseArgs(args)
			assert.Error(t, err)
		})
	}
}
