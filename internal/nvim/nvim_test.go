package nvim

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadless(t *testing.T) *Manager {
	t.Helper()
	if _, err := exec.LookPath("nvim"); err != nil {
		t.Skip("nvim not in PATH")
	}
	t.Setenv("NVIM_LISTEN_ADDRESS", "")

	m, err := New()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestWriteFileKeepsExactBytes(t *testing.T) {
	m := newHeadless(t)

	tests := []struct {
		name     string
		original string
		content  string
	}{
		{name: "crlf", original: "a\r\n  Edit\r\nb\r\n", content: "a\r\nb\r\n"},
		{name: "bom", original: "\ufeffa\n  Edit\n", content: "\ufeffa\n"},
		{name: "no final newline", original: "a\n  Edit\nb\n", content: "a\nb"},
		{name: "lf", original: "a\nEdit\nb\n", content: "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "page.tsx")
			require.NoError(t, os.WriteFile(path, []byte(tt.original), 0644))

			require.NoError(t, m.WriteFile(path, tt.content))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got))
		})
	}
}

func TestWriteFileRefusesModifiedBuffer(t *testing.T) {
	m := newHeadless(t)

	path := filepath.Join(t.TempDir(), "page.tsx")
	require.NoError(t, os.WriteFile(path, []byte("a\nEdit\n"), 0644))

	require.NoError(t, m.nvim.Command("edit "+escapePath(path)))
	require.NoError(t, m.nvim.SetBufferLines(0, 0, -1, true, [][]byte{[]byte("unsaved work")}))

	err := m.WriteFile(path, "a\n")
	assert.ErrorIs(t, err, ErrBufferModified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nEdit\n", string(got))
}
