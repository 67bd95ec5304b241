package rewrite

import (
	"strings"
	"unicode"

	"github.com/sokinpui/fixbuttons/model"
)

// Replacement is a literal substring swap applied to every occurrence.
type Replacement struct {
	From string
	To   string
}

// Rules is the full set of edits run against a file, in order.
type Rules struct {
	Class Replacement
	Icon  Replacement
	// StripLine drops every line that trims to exactly this text.
	StripLine string
}

// Default holds the literals for the edit buttons on the landing-content page.
var Default = Rules{
	Class: Replacement{
		From: `className="inline-flex items-center px-3 py-1.5 bg-slate-200 text-slate-600 rounded-md hover:bg-slate-100 transition-colors"`,
		To:   `className="p-2 text-gray-400 hover:text-blue-500 hover:bg-blue-50 rounded-lg transition flex-shrink-0" title="Edit"`,
	},
	Icon: Replacement{
		From: `<PencilIcon className="h-4 w-4 mr-1" />`,
		To:   `<PencilIcon className="h-5 w-5" />`,
	},
	StripLine: "Edit",
}

// Apply runs the default rules against content.
func Apply(content string) (string, model.Stats) {
	return Default.Apply(content)
}

// Apply replaces the class literal, then the icon literal, then strips
// matching lines.
func (r Rules) Apply(content string) (string, model.Stats) {
	var stats model.Stats

	content, stats.ClassReplacements = replaceAll(content, r.Class)
	content, stats.IconReplacements = replaceAll(content, r.Icon)
	content, stats.LinesRemoved = StripLines(content, r.StripLine)

	return content, stats
}

func replaceAll(content string, rep Replacement) (string, int) {
	if rep.From == "" {
		return content, 0
	}
	n := strings.Count(content, rep.From)
	if n == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, rep.From, rep.To), n
}

// StripLines splits content on '\n' and drops every line whose trimmed text
// equals literal. The remaining lines are joined back with '\n'.
func StripLines(content, literal string) (string, int) {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if strings.TrimFunc(line, isStripSpace) == literal {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return content, 0
	}
	return strings.Join(kept, "\n"), removed
}

// isStripSpace matches Unicode whitespace plus the ASCII file, group, record
// and unit separators, which str.strip-style trimming also removes.
func isStripSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
