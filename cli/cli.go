package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	DryRun      bool
	Copy        bool
	Nvim        bool
	KeepHistory bool
	Undo        bool
	Redo        bool
	History     bool
	NoAnimation bool
	Verbose     bool
}

// ParseFlags parses os.Args using pflag.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs defines and parses command-line flags from args.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("fixbuttons", pflag.ContinueOnError)

	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print the diff that would be applied without writing the file.")
	flags.BoolVarP(&cfg.Copy, "copy", "c", false, "With --dry-run, also copy the diff to the clipboard.")
	flags.BoolVarP(&cfg.Nvim, "nvim", "b", false, "Write through a Neovim buffer so an open editor stays in sync.")
	flags.BoolVarP(&cfg.KeepHistory, "keep-history", "k", false, "Snapshot the file so the rewrite can be undone later.")
	flags.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable loading spinner and summary screen.")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging.")

	// Mutually exclusive history group
	flags.BoolVarP(&cfg.Undo, "undo", "u", false, "Undo the last recorded rewrite.")
	flags.BoolVarP(&cfg.Redo, "redo", "r", false, "Redo the last undone rewrite.")
	flags.BoolVarP(&cfg.History, "history", "H", false, "List recorded rewrites.")

	flags.Usage = func() {
		fmt.Println("Usage: fixbuttons [flags]")
		fmt.Println("\nRestyle the edit buttons on the landing-content admin page in place.")
		fmt.Println("\nExample: fixbuttons -n")
		fmt.Println("\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("error: unexpected arguments %v; the target file is fixed", flags.Args())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects flag combinations that make no sense together.
func (c *Config) Validate() error {
	if c.Undo && c.Redo {
		return errors.New("error: --undo and --redo are mutually exclusive")
	}
	if c.DryRun && (c.Undo || c.Redo) {
		return errors.New("error: --dry-run cannot be combined with --undo or --redo")
	}
	if c.History && (c.Undo || c.Redo || c.DryRun) {
		return errors.New("error: --history cannot be combined with --undo, --redo or --dry-run")
	}
	if c.Copy && !c.DryRun {
		return errors.New("error: --copy requires --dry-run")
	}
	return nil
}
