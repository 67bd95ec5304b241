package nvim

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/fixbuttons/internal/logger"
)

// ErrBufferModified is returned when the target is open in a buffer with
// unsaved changes.
var ErrBufferModified = errors.New("buffer has unsaved changes")

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

// New creates a new Neovim manager, connecting to an existing instance
// or starting a new headless one.
func New() (*Manager, error) {
	log := logger.WithComponent("nvim")

	// Try to connect to a running instance first.
	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			log.WithField("addr", addr).Debug("connected to running instance")
			return &Manager{nvim: v}, nil
		}
		log.WithError(err).Debug("could not reach NVIM_LISTEN_ADDRESS, starting headless")
	}

	tmpDir, err := os.MkdirTemp("", "fixbuttons-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	m := &Manager{
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
	}
	m.configureTempInstance()
	return m, nil
}

// configureTempInstance keeps the headless instance from leaving swap files
// next to the target.
func (m *Manager) configureTempInstance() {
	if err := m.nvim.Command("set noswapfile"); err != nil {
		logger.WithComponent("nvim").WithError(err).Debug("could not configure headless instance")
	}
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err == nil {
			m.cmd.Wait()
			os.RemoveAll(filepath.Dir(m.socketPath))
		}
	}
}

// WriteFile replaces the buffer for path with content and writes it to disk.
// The buffer is switched to unix line endings without a BOM so the bytes on
// disk are exactly content; any \r or U+FEFF it holds is kept as text.
func (m *Manager) WriteFile(path, content string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("could not resolve %s: %w", path, err)
	}

	modified, err := m.isModified(absPath)
	if err != nil {
		return fmt.Errorf("nvim failed to inspect %s: %w", path, err)
	}
	if modified {
		return fmt.Errorf("%s: %w", path, ErrBufferModified)
	}

	lines := strings.Split(content, "\n")
	// A trailing newline is the buffer's end-of-line flag, not an extra line.
	eol := len(lines) > 1 && lines[len(lines)-1] == ""
	if eol {
		lines = lines[:len(lines)-1]
	}
	byteContent := make([][]byte, len(lines))
	for i, s := range lines {
		byteContent[i] = []byte(s)
	}

	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("edit %s", escapePath(absPath)))
	b.Command("setlocal fileformat=unix fileencoding=utf-8 nobomb nofixendofline")
	b.SetBufferLines(0, 0, -1, true, byteContent)
	if eol {
		b.Command("setlocal eol")
	} else {
		b.Command("setlocal noeol")
	}
	b.Command("write!")
	if err := b.Execute(); err != nil {
		return fmt.Errorf("nvim failed to write %s: %w", path, err)
	}
	return nil
}

// isModified reports whether a loaded buffer for path has unsaved changes.
func (m *Manager) isModified(absPath string) (bool, error) {
	var bufnr int
	if err := m.nvim.Call("bufnr", &bufnr, absPath); err != nil {
		return false, err
	}
	if bufnr < 0 {
		return false, nil
	}
	var modified int
	if err := m.nvim.Call("getbufvar", &modified, bufnr, "&modified"); err != nil {
		return false, err
	}
	return modified != 0, nil
}

func escapePath(path string) string {
	return strings.NewReplacer(" ", `\ `, "%", `\%`, "#", `\#`).Replace(path)
}
