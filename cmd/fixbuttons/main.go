package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sokinpui/fixbuttons/cli"
	"github.com/sokinpui/fixbuttons/fixbuttons"
	"github.com/sokinpui/fixbuttons/internal/logger"
	"github.com/sokinpui/fixbuttons/internal/tui"
	"github.com/sokinpui/fixbuttons/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.SetVerbose(cfg.Verbose)

	app, err := fixbuttons.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Dry runs and history listings print to stdout and should not run the TUI.
	if cfg.NoAnimation || cfg.DryRun || cfg.History {
		summary, err := app.Execute()
		if err != nil {
			reportError(err)
			os.Exit(1)
		}
		ui.PrintSummary(summary)
		return
	}

	model := tui.New(app)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		os.Exit(1)
	}
}

func reportError(err error) {
	ui.Error("Error: %v", err)
	var detailed *fixbuttons.DetailedError
	if errors.As(err, &detailed) {
		fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
	}
}
