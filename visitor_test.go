package vfs

import "testing"

func TestChain(t *testing.T) {
	var calls []string
	record := func(name string, state ScanState) Visitor {
		return func(path string, isDir bool) ScanState {
			calls = append(calls, name)
			return state
		}
	}

	v := Chain(record("a", Continue), nil, record("b", Skip), record("c", Abort))
	if got := v("x", false); got != Skip {
		t.Errorf("expected skip, got %v", got)
	}
	if len(calls) != 2 {
		t.Errorf("expected chain to stop at first decision, got %v", calls)
	}

	if got := Chain()("x", true); got != Continue {
		t.Errorf("expected empty chain to continue, got %v", got)
	}
}

func TestNot(t *testing.T) {
	hidden := FileFilter(func(path string) bool { return path[0] == '.' })
	v := Not(hidden)
	if v(".env", false) != Skip || v("main.go", false) != Continue {
		t.Error("expected inverted filter")
	}
	abort := func(string, bool) ScanState { return Abort }
	if Not(abort)("x", false) != Abort {
		t.Error("expected abort to pass through")
	}
}

func TestDepth(t *testing.T) {
	root := ParseFilenameDelim("src/*.go", '/')
	v := Depth(2, root)

	tests := []struct {
		path  string
		isDir bool
		want  ScanState
	}{
		{"src/main.go", false, Continue},
		{"src/pkg", true, Continue},
		{"src/pkg/a.go", false, Continue},
		{"src/pkg/inner", true, Skip},
		{"src/pkg/inner/b.go", false, Skip},
	}
	for _, tt := range tests {
		if got := v(tt.path, tt.isDir); got != tt.want {
			t.Errorf("Depth(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
		}
	}

	archive := NewFilenameDelim("*", "a.zip", '/')
	if Depth(1, archive)("a.zip/dir/", true) != Skip {
		t.Error("expected archive directory at depth 1 to be pruned")
	}
}

func TestLimit(t *testing.T) {
	v := Limit(2)
	if v("d", true) != Continue {
		t.Error("expected directories to pass")
	}
	for i := 0; i < 2; i++ {
		if v("f", false) != Continue {
			t.Fatalf("expected file %d to pass", i)
		}
	}
	if v("f", false) != Abort {
		t.Error("expected abort after limit")
	}
}
