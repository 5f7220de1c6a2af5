package zip

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gobeaver/vfs"
)

// Scanner enumerates the members of a zip archive whose archive-relative
// paths match a pattern. The root is the archive path followed by the
// pattern, e.g. "archive.zip/dir/*.txt"; matches are reported the same way.
type Scanner struct {
	*vfs.ScanBase
}

var _ vfs.Scanner = (*Scanner)(nil)

// NewScanner creates a scanner for root. The part of root after the
// archive is the pattern and may name subdirectories.
func NewScanner(root vfs.Filename, opts ...vfs.ScanOption) (*Scanner, error) {
	return NewScannerWithExtensions(root, DefaultExtensions, opts...)
}

// NewScannerWithExtensions is NewScanner for archives recognised by any of
// exts.
func NewScannerWithExtensions(root vfs.Filename, exts []string, opts ...vfs.ScanOption) (*Scanner, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	delim := root.Delimiter()
	archive, pattern := SplitPathExt(root.OpenPath(), delim, exts...)
	base, err := vfs.NewScanBase(vfs.NewFilenameDelim(pattern, archive, delim), opts...)
	if err != nil {
		return nil, err
	}
	return &Scanner{ScanBase: base}, nil
}

// Scan lists matching members in sorted order.
func (s *Scanner) Scan() ([]string, error) {
	return s.Run(s.scanDir)
}

func (s *Scanner) scanDir(root vfs.Filename) (vfs.ScanState, error) {
	delim := root.Delimiter()
	names, err := Entries(root.BaseDir())
	if err != nil {
		return vfs.Abort, err
	}

	// Only the subdirectory the pattern navigates into is of interest.
	sub := vfs.ParseFilenameDelim(s.Pattern(), delim).BasePath()
	prefix := root.BasePath()
	sep := string(delim)
	hasPrefix := func(entry string) bool {
		if len(entry) < len(sub) {
			return false
		}
		if s.Options().CaseSensitive {
			return entry[:len(sub)] == sub
		}
		return strings.EqualFold(entry[:len(sub)], sub)
	}

	var pruned string
	for _, name := range names {
		entry := strings.ReplaceAll(name, "/", sep)
		if !hasPrefix(entry) {
			continue
		}
		if pruned != "" && strings.HasPrefix(entry, pruned) {
			continue
		}
		rel := entry[len(sub):]
		if rel == "" {
			continue
		}

		if strings.HasSuffix(entry, sep) {
			if !s.Recursive() {
				continue
			}
			switch s.Visit(prefix+entry, true) {
			case vfs.Skip:
				pruned = entry
			case vfs.Abort:
				return vfs.Abort, nil
			}
			continue
		}

		if !s.Recursive() && strings.Contains(rel, sep) {
			continue
		}
		if !s.Match(entry) {
			continue
		}
		switch s.Visit(prefix+entry, false) {
		case vfs.Skip:
			continue
		case vfs.Abort:
			return vfs.Abort, nil
		}
		s.Add(prefix + entry)
	}

	return vfs.Continue, nil
}

// ChangeToken returns a token that polls the archive file every interval and
// fires once its size or modification time differs from now.
func (s *Scanner) ChangeToken(ctx context.Context, interval time.Duration) (vfs.ChangeToken, error) {
	archive := s.Root().BaseDir()
	before, err := os.Stat(archive)
	if err != nil {
		return nil, vfs.WrapPathErr("watch", archive, mapError(err))
	}

	return vfs.NewPollingChangeToken(ctx, vfs.PollingConfig{
		Interval: interval,
		CheckFunc: func() bool {
			now, err := os.Stat(archive)
			if err != nil {
				return true
			}
			return now.Size() != before.Size() || !now.ModTime().Equal(before.ModTime())
		},
	}), nil
}
