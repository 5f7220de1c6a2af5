package native

import (
	"os"

	"github.com/gobeaver/vfs"
)

// Scanner enumerates files on disk whose names match the root's file name
// pattern. Paths are reported as the root's directory plus the relative
// path, joined with the root's delimiter.
type Scanner struct {
	*vfs.ScanBase
}

var _ vfs.Scanner = (*Scanner)(nil)

// NewScanner creates a scanner for root, e.g. "logs/*.txt".
func NewScanner(root vfs.Filename, opts ...vfs.ScanOption) (*Scanner, error) {
	root.Normalize()
	base, err := vfs.NewScanBase(root, opts...)
	if err != nil {
		return nil, err
	}
	return &Scanner{ScanBase: base}, nil
}

// Scan walks the tree in directory order.
func (s *Scanner) Scan() ([]string, error) {
	return s.Run(s.scanDir)
}

func (s *Scanner) scanDir(root vfs.Filename) (vfs.ScanState, error) {
	root.Normalize()
	dir := root.BasePath()

	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	entries, err := os.ReadDir(readDir)
	if err != nil {
		return vfs.Abort, vfs.WrapPathErr("scan", readDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}
		path := dir + name

		if entry.IsDir() {
			if !s.Recursive() {
				continue
			}
			switch s.Visit(path, true) {
			case vfs.Skip:
				continue
			case vfs.Abort:
				return vfs.Abort, nil
			}

			sub := root
			sub.SetBasePath(path + string(root.Delimiter()))
			sub.SetFileName(s.Pattern())
			if state, err := s.scanDir(sub); state == vfs.Abort {
				return vfs.Abort, err
			}
			continue
		}

		if !s.Match(name) {
			continue
		}
		switch s.Visit(path, false) {
		case vfs.Skip:
			continue
		case vfs.Abort:
			return vfs.Abort, nil
		}
		s.Add(path)
	}

	return vfs.Continue, nil
}
