package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/sokinpui/fixbuttons/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// PrintSummary writes the outcome of a run to stderr. The completion
// message itself goes to stdout.
func PrintSummary(s model.Summary) {
	Header("\n--- Rewrite Summary ---")

	if s.Path != "" {
		Info("Target: %s", s.Path)
		Info("  class attributes replaced: %d", s.Stats.ClassReplacements)
		Info("  icons resized:             %d", s.Stats.IconReplacements)
		Info("  \"Edit\" lines removed:      %d", s.Stats.LinesRemoved)
		if !s.Stats.Changed() {
			Warning("No literals matched; file written back unchanged.")
		}
	}
	if len(s.Modified) > 0 {
		Success("Updated %d file(s):", len(s.Modified))
		for _, f := range s.Modified {
			Path("- %s", f)
		}
	}
	if len(s.Failed) > 0 {
		Error("Failed to process %d file(s):", len(s.Failed))
		for _, f := range s.Failed {
			Path("- %s", f)
		}
	}
	if s.Message != "" {
		fmt.Println(s.Message)
	}
}
