package vfs

import (
	"strings"
	"sync/atomic"
)

// Chain runs visitors in order. The first result other than Continue wins,
// so put visitors with side effects, such as Limit, last.
func Chain(visitors ...Visitor) Visitor {
	return func(path string, isDir bool) ScanState {
		for _, v := range visitors {
			if v == nil {
				continue
			}
			if state := v(path, isDir); state != Continue {
				return state
			}
		}
		return Continue
	}
}

// Not swaps Continue and Skip. Abort passes through.
func Not(v Visitor) Visitor {
	return func(path string, isDir bool) ScanState {
		switch v(path, isDir) {
		case Continue:
			return Skip
		case Skip:
			return Continue
		default:
			return Abort
		}
	}
}

// Depth limits a scan to maxDepth levels below the directory of root.
// Depth 1 keeps direct children only.
//
// Example:
//
//	root := vfs.ParseFilename("src/*.go")
//	s, _ := native.NewScanner(root, vfs.WithRecursive(true), vfs.WithVisitor(vfs.Depth(2, root)))
func Depth(maxDepth int, root Filename) Visitor {
	base := root.BasePath()
	sep := string(root.Delimiter())

	return func(path string, isDir bool) ScanState {
		rel := strings.TrimSuffix(strings.TrimPrefix(path, base), sep)
		depth := 0
		if rel != "" {
			depth = strings.Count(rel, sep) + 1
		}
		if isDir && depth >= maxDepth {
			return Skip
		}
		if depth > maxDepth {
			return Skip
		}
		return Continue
	}
}

// FileFilter keeps the files for which keep returns true. Directories are
// always descended into.
//
// Example:
//
//	vfs.FileFilter(func(path string) bool {
//	    return !strings.Contains(path, "_test")
//	})
func FileFilter(keep func(path string) bool) Visitor {
	return func(path string, isDir bool) ScanState {
		if isDir || keep(path) {
			return Continue
		}
		return Skip
	}
}

// Limit aborts the scan after n files were accepted. The count spans
// every scan the visitor is used in.
func Limit(n int) Visitor {
	var seen atomic.Int64
	return func(path string, isDir bool) ScanState {
		if isDir {
			return Continue
		}
		if seen.Add(1) > int64(n) {
			return Abort
		}
		return Continue
	}
}
