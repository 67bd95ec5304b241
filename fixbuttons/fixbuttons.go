package fixbuttons

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/fixbuttons/cli"
	"github.com/sokinpui/fixbuttons/internal/diff"
	"github.com/sokinpui/fixbuttons/internal/fs"
	"github.com/sokinpui/fixbuttons/internal/logger"
	"github.com/sokinpui/fixbuttons/internal/nvim"
	"github.com/sokinpui/fixbuttons/internal/rewrite"
	"github.com/sokinpui/fixbuttons/internal/state"
	"github.com/sokinpui/fixbuttons/model"
)

// DefaultTarget is the page whose edit buttons get restyled.
const DefaultTarget = `e:\Next\kanglogo\app\admin\landing-content\page.tsx`

// CompletionMessage is printed once a rewrite finishes.
const CompletionMessage = "Done!"

// Writer replaces the content of a file.
type Writer interface {
	WriteFile(path, content string) error
}

type diskWriter struct{}

func (diskWriter) WriteFile(path, content string) error {
	return fs.WriteText(path, content)
}

// App orchestrates the entire application logic.
type App struct {
	cfg       *cli.Config
	target    string
	stateRoot string
	stdout    io.Writer
	copyText  func(string) error
}

// Option customizes an App.
type Option func(*App)

// WithTarget points the app at a different file. The command line never
// sets this; it exists for embedding and tests.
func WithTarget(path string) Option {
	return func(a *App) { a.target = path }
}

// WithStateRoot keeps history under dir instead of the git root.
func WithStateRoot(dir string) Option {
	return func(a *App) { a.stateRoot = dir }
}

// WithStdout redirects dry-run diffs and history listings.
func WithStdout(w io.Writer) Option {
	return func(a *App) { a.stdout = w }
}

// WithClipboard replaces the clipboard used by --copy.
func WithClipboard(copyText func(string) error) Option {
	return func(a *App) { a.copyText = copyText }
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = &cli.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		cfg:      cfg,
		target:   DefaultTarget,
		stdout:   os.Stdout,
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Target returns the file the app operates on.
func (a *App) Target() string {
	return a.target
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Undo:
		return a.undoLastRewrite()
	case a.cfg.Redo:
		return a.redoLastRewrite()
	case a.cfg.History:
		return a.listHistory()
	case a.cfg.DryRun:
		return a.previewRewrite()
	default:
		return a.rewriteTarget()
	}
}

// Plan reads the target and computes its rewritten content without writing.
func (a *App) Plan() (model.FileChange, error) {
	content, err := fs.ReadText(a.target)
	if err != nil {
		return model.FileChange{}, err
	}
	out, stats := rewrite.Apply(content)
	logger.WithComponent("rewrite").WithFields(map[string]interface{}{
		"path":    a.target,
		"classes": stats.ClassReplacements,
		"icons":   stats.IconReplacements,
		"removed": stats.LinesRemoved,
	}).Debug("applied rules")

	return model.FileChange{
		Path:     a.target,
		Original: content,
		Content:  out,
		Stats:    stats,
	}, nil
}

// rewriteTarget reads, transforms, and overwrites the target.
func (a *App) rewriteTarget() (model.Summary, error) {
	change, err := a.Plan()
	if err != nil {
		return model.Summary{}, err
	}

	writer, closeWriter, err := a.writer()
	if err != nil {
		return model.Summary{}, err
	}
	defer closeWriter()

	if err := writer.WriteFile(change.Path, change.Content); err != nil {
		return model.Summary{}, err
	}

	if a.cfg.KeepHistory && change.Stats.Changed() {
		manager, err := a.stateManager()
		if err != nil {
			return model.Summary{}, err
		}
		if _, err := manager.Record(change.Path, change.Original, change.Content); err != nil {
			return model.Summary{}, fmt.Errorf("file rewritten but history was not saved: %w", err)
		}
	}

	summary := model.Summary{
		Path:     change.Path,
		Stats:    change.Stats,
		Modified: []string{change.Path},
		Message:  CompletionMessage,
	}
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

// previewRewrite prints the diff the rewrite would produce.
func (a *App) previewRewrite() (model.Summary, error) {
	change, err := a.Plan()
	if err != nil {
		return model.Summary{}, err
	}

	text, err := diff.Unified(filepath.ToSlash(change.Path), change.Original, change.Content)
	if err != nil {
		return model.Summary{}, err
	}
	fmt.Fprint(a.stdout, text)

	if a.cfg.Copy && text != "" {
		if err := a.copyText(text); err != nil {
			return model.Summary{}, fmt.Errorf("failed to copy diff to clipboard: %w", err)
		}
	}

	message := "Dry run: no changes needed."
	if text != "" {
		message = "Dry run: file not modified."
	}
	summary := model.Summary{
		Path:    change.Path,
		Stats:   change.Stats,
		Diff:    text,
		Message: message,
	}
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

// undoLastRewrite restores the content recorded before the last rewrite.
func (a *App) undoLastRewrite() (model.Summary, error) {
	manager, err := a.stateManager()
	if err != nil {
		return model.Summary{}, err
	}
	ops, err := manager.GetOperationsToUndo()
	if err != nil {
		return model.Summary{}, err
	}
	if len(ops) == 0 {
		return model.Summary{Message: "No rewrite to undo."}, nil
	}
	return a.restore(manager, ops, true, "Undid last rewrite.")
}

// redoLastRewrite reapplies the last undone rewrite.
func (a *App) redoLastRewrite() (model.Summary, error) {
	manager, err := a.stateManager()
	if err != nil {
		return model.Summary{}, err
	}
	ops, err := manager.GetOperationsToRedo()
	if err != nil {
		return model.Summary{}, err
	}
	if len(ops) == 0 {
		return model.Summary{Message: "No rewrite to redo."}, nil
	}
	return a.restore(manager, ops, false, "Redid last undone rewrite.")
}

// listHistory prints one line per recorded rewrite, oldest first. The entry
// an undo would revert is marked with '*'.
func (a *App) listHistory() (model.Summary, error) {
	manager, err := a.stateManager()
	if err != nil {
		return model.Summary{}, err
	}
	entries, current := manager.History()
	if len(entries) == 0 {
		return model.Summary{Message: "No rewrites recorded."}, nil
	}

	for i, entry := range entries {
		marker := " "
		if i == current {
			marker = "*"
		}
		when := time.Unix(entry.Timestamp, 0).UTC().Format(time.RFC3339)
		for _, op := range entry.Operations {
			fmt.Fprintf(a.stdout, "%s %d %s %s %s\n", marker, i+1, when, op.Action, op.Path)
		}
	}

	summary := model.Summary{
		Message: fmt.Sprintf("%d recorded rewrite(s), %d undoable.", len(entries), current+1),
	}
	return summary, nil
}

// restore swaps each file to one side of its recorded operation. A file is
// only touched when its current content matches the other side, so edits made
// since the rewrite are never clobbered.
func (a *App) restore(manager *state.Manager, ops []state.Operation, undo bool, message string) (model.Summary, error) {
	writer, closeWriter, err := a.writer()
	if err != nil {
		return model.Summary{}, err
	}
	defer closeWriter()

	log := logger.WithComponent("history")
	var restored, failed []string
	for _, op := range ops {
		expected, wanted := op.AfterHash, op.BeforeHash
		if !undo {
			expected, wanted = op.BeforeHash, op.AfterHash
		}

		current, err := fs.GetFileSHA256(op.Path)
		if err != nil || current != expected {
			log.WithField("path", op.Path).Warn("file changed since it was recorded, skipping")
			failed = append(failed, op.Path)
			continue
		}
		content, err := manager.Snapshot(wanted)
		if err != nil {
			log.WithField("path", op.Path).WithError(err).Warn("snapshot unavailable")
			failed = append(failed, op.Path)
			continue
		}
		if err := writer.WriteFile(op.Path, content); err != nil {
			log.WithField("path", op.Path).WithError(err).Warn("restore failed")
			failed = append(failed, op.Path)
			continue
		}
		restored = append(restored, op.Path)
	}

	summary := model.Summary{
		Modified: restored,
		Failed:   failed,
		Message:  message,
	}
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

func (a *App) stateManager() (*state.Manager, error) {
	var (
		m   *state.Manager
		err error
	)
	if a.stateRoot != "" {
		m, err = state.NewAt(a.stateRoot)
	} else {
		m, err = state.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state manager: %w", err)
	}
	return m, nil
}

// writer picks the disk or Neovim backend. The returned func releases it.
func (a *App) writer() (Writer, func(), error) {
	if !a.cfg.Nvim {
		return diskWriter{}, func() {}, nil
	}
	manager, err := nvim.New()
	if err != nil {
		return nil, nil, err
	}
	return manager, manager.Close, nil
}

// relativizeSummaryPaths converts absolute file paths in a summary to be
// relative to the current working directory for cleaner display.
func (a *App) relativizeSummaryPaths(summary *model.Summary) {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	makeRelative := func(p string) string {
		if !filepath.IsAbs(p) {
			return p
		}
		rel, err := filepath.Rel(wd, p)
		if err != nil {
			return p
		}
		return rel
	}
	relativizeAll := func(paths []string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			out[i] = makeRelative(p)
		}
		return out
	}

	summary.Path = makeRelative(summary.Path)
	summary.Modified = relativizeAll(summary.Modified)
	summary.Failed = relativizeAll(summary.Failed)
}
