package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	contextLines = 3
	noNewline    = "\\ No newline at end of file\n"
)

// Unified renders the change from before to after as a unified diff with
// a/ and b/ prefixed headers. It returns "" when nothing changed.
func Unified(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to render diff for %s: %w", path, err)
	}
	return text, nil
}

// splitLines keeps each line's terminator. A final line without one carries
// the no-newline marker, so it never compares equal to the terminated form.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n" + noNewline
	return lines
}
