package fixbuttons

import (
	"fmt"

	"github.com/sokinpui/fixbuttons/cli"
	"github.com/sokinpui/fixbuttons/model"
)

// Config for using fixbuttons as a library.
type Config struct {
	// Write through Neovim instead of directly to disk.
	Nvim bool
	// Snapshot the file so the rewrite can be undone.
	KeepHistory bool
	// Directory for history files. Defaults to the git root.
	StateRoot string
}

// Rewrite applies the edit-button rewrite to path and overwrites it.
func Rewrite(path string, config Config) (model.Summary, error) {
	cliCfg := &cli.Config{
		Nvim:        config.Nvim,
		KeepHistory: config.KeepHistory,
	}

	opts := []Option{WithTarget(path)}
	if config.StateRoot != "" {
		opts = append(opts, WithStateRoot(config.StateRoot))
	}

	app, err := New(cliCfg, opts...)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to initialize fixbuttons app: %w", err)
	}
	return app.Execute()
}
