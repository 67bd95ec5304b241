package state

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sokinpui/fixbuttons/internal/fs"
	"github.com/sokinpui/fixbuttons/internal/logger"
)

const (
	stateDirName  = ".fixbuttons"
	stateFileName = "state.fb"
	SnapshotDir   = "snapshots"
)

// Operation records one rewrite of one file.
type Operation struct {
	Action     string
	Path       string
	BeforeHash string // SHA256 of the content before the rewrite
	AfterHash  string // SHA256 of the content after the rewrite
}

// HistoryEntry represents one complete run of the tool.
type HistoryEntry struct {
	Timestamp  int64
	Operations []Operation
}

// State represents the entire state file.
type State struct {
	History      []HistoryEntry
	CurrentIndex int
}

// Manager handles the lifecycle of the state file and its snapshots.
type Manager struct {
	statePath string
	state     *State
	StateDir  string
}

// findGitRoot finds the root of the git repository.
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// New creates a state manager rooted at the git root, or the working
// directory outside a repository.
func New() (*Manager, error) {
	rootDir, err := findGitRoot()
	if err != nil {
		rootDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
	}
	return NewAt(rootDir)
}

// NewAt creates a state manager that keeps its files under rootDir.
func NewAt(rootDir string) (*Manager, error) {
	stateDir := filepath.Join(rootDir, stateDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, SnapshotDir), 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}
	m := &Manager{
		statePath: filepath.Join(stateDir, stateFileName),
		StateDir:  stateDir,
	}
	if err := m.load(); err != nil {
		logger.WithComponent("state").WithError(err).Warn("discarding unreadable state file")
		m.state = &State{CurrentIndex: -1}
	}
	return m, nil
}

// The state file is plain text: the current index, then one blank-line
// separated block per history entry holding a timestamp followed by four
// lines per operation (action, path, before hash, after hash).
func (m *Manager) load() error {
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.state = &State{CurrentIndex: -1}
			return nil
		}
		return err
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")
	if len(blocks) == 0 || strings.TrimSpace(blocks[0]) == "" {
		m.state = &State{CurrentIndex: -1}
		return nil
	}

	index, err := strconv.Atoi(strings.TrimSpace(blocks[0]))
	if err != nil {
		return fmt.Errorf("invalid state file: could not parse current index: %w", err)
	}

	st := &State{CurrentIndex: index}
	for _, block := range blocks[1:] {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")

		ts, err := strconv.ParseInt(lines[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid state file: could not parse timestamp from '%s': %w", lines[0], err)
		}

		entry := HistoryEntry{Timestamp: ts}
		opLines := lines[1:]
		if len(opLines)%4 != 0 {
			return fmt.Errorf("invalid state file: incomplete operation record")
		}
		for i := 0; i < len(opLines); i += 4 {
			entry.Operations = append(entry.Operations, Operation{
				Action:     opLines[i],
				Path:       opLines[i+1],
				BeforeHash: opLines[i+2],
				AfterHash:  opLines[i+3],
			})
		}
		st.History = append(st.History, entry)
	}

	if st.CurrentIndex < -1 || st.CurrentIndex >= len(st.History) {
		return fmt.Errorf("invalid state file: index %d out of range", st.CurrentIndex)
	}
	m.state = st
	return nil
}

func (m *Manager) save() error {
	blocks := []string{strconv.Itoa(m.state.CurrentIndex)}

	for _, entry := range m.state.History {
		lines := []string{strconv.FormatInt(entry.Timestamp, 10)}
		for _, op := range entry.Operations {
			lines = append(lines, op.Action, op.Path, op.BeforeHash, op.AfterHash)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	content := strings.Join(blocks, "\n\n") + "\n"
	if err := fs.WriteText(m.statePath, content); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Record snapshots both versions of path and appends a history entry,
// discarding anything that could still have been redone.
func (m *Manager) Record(path, before, after string) (Operation, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Operation{}, fmt.Errorf("could not resolve %s: %w", path, err)
	}

	op := Operation{
		Action:     "modify",
		Path:       absPath,
		BeforeHash: fs.HashText(before),
		AfterHash:  fs.HashText(after),
	}
	if err := m.storeSnapshot(op.BeforeHash, before); err != nil {
		return Operation{}, err
	}
	if err := m.storeSnapshot(op.AfterHash, after); err != nil {
		return Operation{}, err
	}

	if m.state.CurrentIndex < len(m.state.History)-1 {
		m.state.History = m.state.History[:m.state.CurrentIndex+1]
	}
	m.state.History = append(m.state.History, HistoryEntry{
		Timestamp:  time.Now().UTC().Unix(),
		Operations: []Operation{op},
	})
	m.state.CurrentIndex++

	logger.WithComponent("state").WithField("path", absPath).Debug("recorded rewrite")
	return op, m.save()
}

// GetOperationsToUndo gets the last operations and moves the history pointer.
func (m *Manager) GetOperationsToUndo() ([]Operation, error) {
	if m.state.CurrentIndex < 0 {
		return nil, nil
	}
	ops := m.state.History[m.state.CurrentIndex].Operations
	m.state.CurrentIndex--
	return ops, m.save()
}

// GetOperationsToRedo gets the next operations and moves the history pointer.
func (m *Manager) GetOperationsToRedo() ([]Operation, error) {
	nextIndex := m.state.CurrentIndex + 1
	if nextIndex >= len(m.state.History) {
		return nil, nil
	}
	m.state.CurrentIndex = nextIndex
	return m.state.History[nextIndex].Operations, m.save()
}

// Snapshot returns the stored content for hash.
func (m *Manager) Snapshot(hash string) (string, error) {
	content, err := fs.ReadText(m.snapshotPath(hash))
	if err != nil {
		return "", fmt.Errorf("missing snapshot %s: %w", hash, err)
	}
	if fs.HashText(content) != hash {
		return "", fmt.Errorf("snapshot %s is corrupt", hash)
	}
	return content, nil
}

// History returns a copy of the recorded entries and the current index.
func (m *Manager) History() ([]HistoryEntry, int) {
	out := make([]HistoryEntry, len(m.state.History))
	copy(out, m.state.History)
	return out, m.state.CurrentIndex
}

func (m *Manager) storeSnapshot(hash, content string) error {
	path := m.snapshotPath(hash)
	if fs.Exists(path) {
		return nil
	}
	if err := fs.WriteText(path, content); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

func (m *Manager) snapshotPath(hash string) string {
	return filepath.Join(m.StateDir, SnapshotDir, hash)
}
