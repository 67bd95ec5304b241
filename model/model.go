package model

// Stats counts what a rewrite changed.
type Stats struct {
	ClassReplacements int
	IconReplacements  int
	LinesRemoved      int
}

// Changed reports whether any operation touched the content.
func (s Stats) Changed() bool {
	return s.ClassReplacements+s.IconReplacements+s.LinesRemoved > 0
}

// FileChange represents a single planned rewrite of a file.
type FileChange struct {
	Path     string
	Original string
	Content  string
	Stats    Stats
}

// Summary holds the results of an operation for display.
type Summary struct {
	Path     string
	Stats    Stats
	Modified []string
	Failed   []string
	Diff     string
	Message  string
}
