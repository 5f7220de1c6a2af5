package vfs

import (
	"errors"
	"testing"
)

func TestNewScanBase(t *testing.T) {
	s, err := NewScanBase(NewFilenameDelim("", "root", '/'))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Pattern() != "*" {
		t.Errorf("expected pattern *, got %q", s.Pattern())
	}
	if s.Recursive() {
		t.Error("expected non-recursive default")
	}
	if s.Logger() == nil {
		t.Error("expected default logger")
	}

	if _, err := NewScanBase(NewFilenameDelim("*.txt", "root", '/'), WithExclude("[")); err == nil {
		t.Error("expected invalid exclude pattern error")
	}
}

func TestScanBaseMatch(t *testing.T) {
	root := NewFilenameDelim("*.TXT", "root", '/')

	folded, _ := NewScanBase(root)
	if !folded.Match("notes.txt") {
		t.Error("expected case-insensitive match")
	}

	exact, _ := NewScanBase(root, WithCaseSensitive(true))
	if exact.Match("notes.txt") {
		t.Error("expected case-sensitive mismatch")
	}
}

func TestScanBaseVisit(t *testing.T) {
	var visited []string
	s, err := NewScanBase(NewFilenameDelim("*", "root", '/'),
		WithExclude("root/vendor/**", "**/*.tmp"),
		WithVisitor(func(path string, isDir bool) ScanState {
			visited = append(visited, path)
			if path == "root/stop" {
				return Abort
			}
			return Continue
		}),
		WithScanLogger(NoopLogger()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Visit("root/vendor/x/y.go", false) != Skip {
		t.Error("expected excluded path to be skipped")
	}
	if s.Visit("root/a/b.tmp", false) != Skip {
		t.Error("expected excluded extension to be skipped")
	}
	if s.Visit("root/a.go", false) != Continue {
		t.Error("expected visitor to continue")
	}
	if s.Visit("root/stop", true) != Abort {
		t.Error("expected visitor to abort")
	}
	if len(visited) != 2 {
		t.Errorf("expected visitor to see only non-excluded paths, got %v", visited)
	}
}

func TestScanBaseRun(t *testing.T) {
	s, _ := NewScanBase(NewFilenameDelim("*", "root", '/'), WithScanLogger(NoopLogger()))

	step := func(root Filename) (ScanState, error) {
		s.Add(root.BasePath() + "a")
		s.Add(root.BasePath() + "b")
		return Continue, nil
	}
	for i := 0; i < 2; i++ {
		got, err := s.Run(step)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected results to reset between runs, got %v", got)
		}
	}

	failure := errors.New("boom")
	_, err := s.Run(func(Filename) (ScanState, error) { return Abort, failure })
	if !errors.Is(err, failure) {
		t.Errorf("expected step error, got %v", err)
	}
}

func TestScanStateString(t *testing.T) {
	for state, want := range map[ScanState]string{Continue: "continue", Skip: "skip", Abort: "abort"} {
		if state.String() != want {
			t.Errorf("expected %s, got %s", want, state.String())
		}
	}
}
