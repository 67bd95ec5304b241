package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/fixbuttons/internal/rewrite"
)

const buttonBefore = `<button className="inline-flex items-center px-3 py-1.5 bg-slate-200 text-slate-600 rounded-md hover:bg-slate-100 transition-colors"><PencilIcon className="h-4 w-4 mr-1" />
  Edit
</button>`

const buttonAfter = `<button className="p-2 text-gray-400 hover:text-blue-500 hover:bg-blue-50 rounded-lg transition flex-shrink-0" title="Edit"><PencilIcon className="h-5 w-5" />
</button>`

func TestApplyButtonScenario(t *testing.T) {
	got, stats := rewrite.Apply(buttonBefore)

	assert.Equal(t, buttonAfter, got)
	assert.Equal(t, 1, stats.ClassReplacements)
	assert.Equal(t, 1, stats.IconReplacements)
	assert.Equal(t, 1, stats.LinesRemoved)
	assert.True(t, stats.Changed())
}

func TestApplyReplacesEveryOccurrence(t *testing.T) {
	content := strings.Repeat(rewrite.Default.Class.From+" "+rewrite.Default.Icon.From+"\n", 3)

	got, stats := rewrite.Apply(content)

	assert.Equal(t, 3, stats.ClassReplacements)
	assert.Equal(t, 3, stats.IconReplacements)
	assert.NotContains(t, got, rewrite.Default.Class.From)
	assert.NotContains(t, got, rewrite.Default.Icon.From)
	assert.Equal(t, 3, strings.Count(got, rewrite.Default.Class.To))
	assert.Equal(t, 3, strings.Count(got, rewrite.Default.Icon.To))
}

func TestApplyLeavesUnrelatedContentAlone(t *testing.T) {
	content := "export default function Page() {\n  return <div>Edit profile</div>\n}\n"

	got, stats := rewrite.Apply(content)

	assert.Equal(t, content, got)
	assert.False(t, stats.Changed())
}

func TestApplyIsIdempotent(t *testing.T) {
	content := "<div>\n" + buttonBefore + "\n\t\tEdit\t\n" + buttonBefore + "\n</div>\n"

	once, _ := rewrite.Apply(content)
	twice, stats := rewrite.Apply(once)

	assert.Equal(t, once, twice)
	assert.False(t, stats.Changed())
}

func TestStripLines(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		removed int
	}{
		{
			name:    "surrounding whitespace",
			in:      "a\n   Edit   \nb\n\tEdit\nc",
			want:    "a\nb\nc",
			removed: 2,
		},
		{
			name:    "carriage return is whitespace",
			in:      "a\r\n  Edit\r\nb\r\n",
			want:    "a\r\nb\r\n",
			removed: 1,
		},
		{
			name:    "ascii separators and unicode spaces",
			in:      "a\n\x1cEdit\x1f\n\u00a0Edit\u2003\nb",
			want:    "a\nb",
			removed: 2,
		},
		{
			name:    "partial matches stay",
			in:      "Edit:\nEditor\n{Edit}\nedit",
			want:    "Edit:\nEditor\n{Edit}\nedit",
			removed: 0,
		},
		{
			name:    "only line",
			in:      "Edit",
			want:    "",
			removed: 1,
		},
		{
			name:    "trailing newline preserved",
			in:      "x\nEdit\n",
			want:    "x\n",
			removed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := rewrite.StripLines(tt.in, "Edit")
			require.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripLinesKeepsOrder(t *testing.T) {
	in := "one\nEdit\ntwo\n  Edit\nthree\nfour"

	got, _ := rewrite.StripLines(in, "Edit")

	assert.Equal(t, []string{"one", "two", "three", "four"}, strings.Split(got, "\n"))
}

func TestRulesWithEmptyFromAreNoop(t *testing.T) {
	rules := rewrite.Rules{StripLine: "Edit"}

	got, stats := rules.Apply("keep\nEdit")

	assert.Equal(t, "keep", got)
	assert.Equal(t, 0, stats.ClassReplacements)
	assert.Equal(t, 1, stats.LinesRemoved)
}
