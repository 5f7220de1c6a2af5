package vfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobeaver/vfs/wildcard"
)

// DefaultDelimiter separates path components unless a Filename is given
// another one.
const DefaultDelimiter = filepath.Separator

// CaseFold selects how Extension folds its result.
type CaseFold int

const (
	AsIs CaseFold = iota
	Upper
	Lower
)

// Filename splits a path into a base path and a file name. The base path is
// either empty or ends with the delimiter, and OpenPath is always the
// concatenation of the two.
type Filename struct {
	base  string
	name  string
	open  string
	delim byte
}

// NewFilename builds a Filename from a file name and an optional base path
// using DefaultDelimiter.
func NewFilename(name, base string) Filename {
	return NewFilenameDelim(name, base, DefaultDelimiter)
}

// NewFilenameDelim is NewFilename with an explicit delimiter.
func NewFilenameDelim(name, base string, delim byte) Filename {
	f := Filename{delim: delim, base: base, name: name}
	f.update()
	return f
}

// ParseFilename builds a Filename from a full path and normalizes it so the
// directory part lands in the base path.
func ParseFilename(path string) Filename {
	return ParseFilenameDelim(path, DefaultDelimiter)
}

// ParseFilenameDelim is ParseFilename with an explicit delimiter.
func ParseFilenameDelim(path string, delim byte) Filename {
	f := NewFilenameDelim(path, "", delim)
	f.Normalize()
	return f
}

// WithDelimiter returns a copy of f that splits paths on d. Separators
// already present in the base path are kept as they are.
func (f Filename) WithDelimiter(d byte) Filename {
	f.delim = d
	f.update()
	return f
}

// Delimiter returns the path separator in use.
func (f Filename) Delimiter() byte {
	if f.delim == 0 {
		return DefaultDelimiter
	}
	return f.delim
}

func (f *Filename) update() {
	d := f.Delimiter()
	if f.base != "" && f.base[len(f.base)-1] != d {
		f.base += string(d)
	}
	f.open = f.base + f.name
}

// SetBasePath replaces the directory part.
func (f *Filename) SetBasePath(base string) {
	f.base = base
	f.update()
}

// SetFileName replaces the file part. It may itself contain delimiters;
// call Normalize to move them into the base path.
func (f *Filename) SetFileName(name string) {
	f.name = name
	f.update()
}

// BasePath returns the directory part including its trailing delimiter.
func (f Filename) BasePath() string { return f.base }

// BaseDir returns the directory part without its trailing delimiter.
func (f Filename) BaseDir() string {
	return strings.TrimSuffix(f.base, string(f.Delimiter()))
}

// FileName returns the file part.
func (f Filename) FileName() string { return f.name }

// OpenPath returns base path and file name joined.
func (f Filename) OpenPath() string { return f.open }

func (f Filename) String() string { return f.open }

// IsEmpty reports whether no path is set.
func (f Filename) IsEmpty() bool { return f.open == "" }

// Normalize re-splits the open path at its last delimiter so that the file
// part holds no delimiter. It is idempotent.
func (f *Filename) Normalize() {
	path := f.open
	if i := strings.LastIndexByte(path, f.Delimiter()); i >= 0 {
		f.base = path[:i+1]
		f.name = path[i+1:]
	} else {
		f.base = ""
		f.name = path
	}
	f.update()
}

// FileDir returns the directory of the open path with a trailing delimiter,
// or "" when the path has no directory component.
func (f Filename) FileDir() string {
	if i := strings.LastIndexByte(f.open, f.Delimiter()); i >= 0 {
		return f.open[:i+1]
	}
	return ""
}

// Stem returns the file name without its extension.
func (f Filename) Stem() string {
	return strings.TrimSuffix(f.name, f.Extension(AsIs))
}

// Extension returns the extension of the open path including the leading
// dot, or "" when the last component has none.
func (f Filename) Extension(fold CaseFold) string {
	d := f.Delimiter()
	for i := len(f.open) - 1; i >= 0; i-- {
		switch f.open[i] {
		case d:
			return ""
		case '.':
			ext := f.open[i:]
			switch fold {
			case Upper:
				return strings.ToUpper(ext)
			case Lower:
				return strings.ToLower(ext)
			}
			return ext
		}
	}
	return ""
}

// IndexExtension returns the index of the first occurrence of ext in path,
// comparing case-insensitively. A match counts only when it is followed by
// delim, '/', another extension or the end of path: "a.zip.gz" contains
// ".zip" but "backup.gzip/x" does not contain ".gz". The result is -1 when
// there is no such occurrence.
func IndexExtension(path, ext string, delim byte) int {
	if ext == "" {
		return -1
	}
	for i := 0; i+len(ext) <= len(path); i++ {
		if !strings.EqualFold(path[i:i+len(ext)], ext) {
			continue
		}
		end := i + len(ext)
		if end == len(path) || path[end] == delim || path[end] == '/' || path[end] == '.' {
			return i
		}
	}
	return -1
}

// DrivePath returns the root of the open path: "X:" plus the delimiter for
// drive letter paths, the server prefix for UNC paths with a share, and the
// drive of the working directory for rooted paths without one. Everything
// else yields "".
func (f Filename) DrivePath() string {
	return drivePath(f.open, f.Delimiter(), true)
}

func drivePath(path string, d byte, resolve bool) string {
	if len(path) >= 2 && isLetter(path[0]) && path[1] == ':' {
		return strings.ToUpper(path[:1]) + ":" + string(d)
	}

	if len(path) >= 2 && path[0] == d && path[1] == d {
		rest := path[2:]
		i := strings.IndexByte(rest, d)
		if i <= 0 || i == len(rest)-1 {
			return ""
		}
		return string([]byte{d, d}) + rest[:i+1]
	}

	if len(path) >= 1 && path[0] == d && resolve {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		return drivePath(cwd, d, false)
	}

	return ""
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// FindWildcard returns the index of the first wildcard character in the open
// path, or -1.
func (f Filename) FindWildcard(allowEscape bool) int {
	return wildcard.Find(f.open, allowEscape)
}

// HasWildcard reports whether the open path contains a wildcard character.
func (f Filename) HasWildcard(allowEscape bool) bool {
	return f.FindWildcard(allowEscape) != wildcard.NotFound
}
