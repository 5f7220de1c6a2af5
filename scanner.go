package vfs

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/gobeaver/vfs/wildcard"
)

// ScanState tells a scan how to continue after visiting an entry.
type ScanState int

const (
	// Continue proceeds normally.
	Continue ScanState = iota
	// Skip leaves out the current entry, and its subtree for directories.
	Skip
	// Abort stops the whole scan.
	Abort
)

func (s ScanState) String() string {
	switch s {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case Abort:
		return "abort"
	default:
		return fmt.Sprintf("ScanState(%d)", int(s))
	}
}

// Scanner enumerates the paths below a root that match the root's file
// name pattern.
type Scanner interface {
	// Scan walks the root and returns matching paths in discovery order.
	// On failure the paths found so far are returned with the error.
	Scan() ([]string, error)
	// Root is the normalized root path; its file name is the pattern.
	Root() Filename
	Recursive() bool
}

// StepFunc scans one directory level below root.
type StepFunc func(root Filename) (ScanState, error)

// ScanBase carries what every scanner shares: the root, the pattern derived
// from the root's file name, the options and the collected results. Concrete
// scanners embed it and supply the per-directory step to Run.
type ScanBase struct {
	root     Filename
	pattern  string
	opts     ScanOptions
	matcher  *wildcard.Matcher
	excludes []glob.Glob
	results  []string
}

// NewScanBase prepares scan state for root. The file name of root is the
// pattern, which may itself contain delimiters for scanners that match
// whole relative paths. An empty file name matches everything.
func NewScanBase(root Filename, opts ...ScanOption) (*ScanBase, error) {
	var o ScanOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger()
	}

	pattern := root.FileName()
	if pattern == "" {
		pattern = "*"
	}

	var flags wildcard.Flags
	if o.CaseSensitive {
		flags |= wildcard.CaseSensitive
	}
	if o.AllowEscape {
		flags |= wildcard.AllowEscape
	}

	s := &ScanBase{
		root:    root,
		pattern: pattern,
		opts:    o,
		matcher: wildcard.New(pattern, flags),
	}

	for _, p := range o.Exclude {
		g, err := glob.Compile(p, rune(root.Delimiter()))
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		s.excludes = append(s.excludes, g)
	}

	return s, nil
}

func (s *ScanBase) Root() Filename { return s.root }

func (s *ScanBase) Recursive() bool { return s.opts.Recursive }

// Pattern returns the file name pattern, "*" when the root named none.
func (s *ScanBase) Pattern() string { return s.pattern }

func (s *ScanBase) Options() ScanOptions { return s.opts }

func (s *ScanBase) Logger() *Logger { return s.opts.Logger }

// Match reports whether name matches the pattern.
func (s *ScanBase) Match(name string) bool {
	return s.matcher.Match(name)
}

// Excluded reports whether path matches an exclusion glob.
func (s *ScanBase) Excluded(path string) bool {
	for _, g := range s.excludes {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Visit applies exclusions and the visitor to path.
func (s *ScanBase) Visit(path string, isDir bool) ScanState {
	if s.Excluded(path) {
		return Skip
	}
	if s.opts.Visitor == nil {
		return Continue
	}
	return s.opts.Visitor(path, isDir)
}

// SetVisitor replaces the visitor for subsequent scans.
func (s *ScanBase) SetVisitor(v Visitor) {
	s.opts.Visitor = v
}

// Add records a match.
func (s *ScanBase) Add(path string) {
	s.results = append(s.results, path)
}

// Run clears previous results, applies step to the root and returns what
// step collected through Add.
func (s *ScanBase) Run(step StepFunc) ([]string, error) {
	s.results = nil
	_, err := step(s.root)
	s.Logger().LogScan(s.root.OpenPath(), len(s.results), err)
	return s.results, err
}
