// Package zip provides read-only vfs.File handles on members of zip
// archives and a scanner over archive contents.
//
// Paths address members through the archive, e.g. "data/archive.zip/dir/a.txt".
// The first whole ".zip" extension in the path (any case) ends the archive
// part. Callers that map other extensions to zip archives, such
// as ".jar", pass them to NewWithExtensions and NewScannerWithExtensions.
package zip

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/gobeaver/vfs"
)

// DefaultExtensions are the archive extensions New and NewScanner split at.
var DefaultExtensions = []string{".ZIP"}

// File is a handle on one member of a zip archive.
type File struct {
	vfs.BaseFile

	exts    []string
	archive *zip.ReadCloser
	rc      io.ReadCloser
	pos     int64
	size    int64
}

var _ vfs.File = (*File)(nil)

// New creates a closed handle for the member named by name. An empty
// member selects the first entry of the archive.
func New(name vfs.Filename) *File {
	return NewWithExtensions(name, DefaultExtensions)
}

// NewWithExtensions is New for archives recognised by any of exts. A path
// containing none of them names the archive itself.
func NewWithExtensions(name vfs.Filename, exts []string) *File {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	f := &File{
		BaseFile: vfs.NewBaseFile(name, vfs.DefaultMode),
		exts:     exts,
		pos:      vfs.Invalid,
		size:     vfs.Invalid,
	}
	f.SetFilename(name)
	return f
}

// SplitPath splits path at the first ".zip" into the archive path and the
// member path. The separator between them is dropped.
func SplitPath(path string, delim byte) (archive, member string) {
	return SplitPathExt(path, delim, DefaultExtensions...)
}

// SplitPathExt splits path after the earliest whole extension among exts
// (see vfs.IndexExtension). On a tie the longer extension wins. Without a
// match the whole path is the archive.
func SplitPathExt(path string, delim byte, exts ...string) (archive, member string) {
	best, n := -1, 0
	for _, ext := range exts {
		i := vfs.IndexExtension(path, ext, delim)
		if i < 0 {
			continue
		}
		if best < 0 || i < best || (i == best && len(ext) > n) {
			best, n = i, len(ext)
		}
	}
	if best < 0 {
		return path, ""
	}
	end := best + n
	archive, member = path[:end], path[end:]
	if member != "" {
		member = member[1:]
	}
	return archive, member
}

// Type reports vfs.TypeZip.
func (f *File) Type() vfs.Type { return vfs.TypeZip }

// SetFilename re-targets the handle, splitting archive and member.
func (f *File) SetFilename(name vfs.Filename) {
	archive, member := SplitPathExt(name.OpenPath(), name.Delimiter(), f.exts...)
	f.BaseFile.SetFilename(vfs.NewFilenameDelim(member, archive, name.Delimiter()))
	f.size = vfs.Invalid
}

// ArchivePath returns the path of the archive file.
func (f *File) ArchivePath() string { return f.Filename().BaseDir() }

// Member returns the member path inside the archive.
func (f *File) Member() string { return f.Filename().FileName() }

// Select points the handle at another member of the same archive. An open
// handle switches to the new member at position zero; if it cannot be
// found the handle is closed.
func (f *File) Select(member string) error {
	name := f.Filename()
	name.SetFileName(member)
	f.BaseFile.SetFilename(name)
	f.size = vfs.Invalid

	if !f.IsOpen() {
		return nil
	}
	if err := f.rc.Close(); err != nil {
		f.Close()
		return f.PathErr("select", err)
	}
	f.rc = nil
	if err := f.openMember(); err != nil {
		f.Close()
		return err
	}
	return nil
}

// Open opens the archive and the member.
func (f *File) Open() error {
	return f.OpenWith(f.Mode())
}

// OpenWith opens the archive and the member. Write flags are ignored;
// archive members are read-only.
func (f *File) OpenWith(mode vfs.OpenMode) error {
	if f.IsOpen() {
		if err := f.Close(); err != nil {
			return err
		}
	}
	f.SetMode(mode)

	archive, err := zip.OpenReader(f.ArchivePath())
	if err != nil {
		err = f.PathErr("open", mapError(err))
		f.Logger().LogOpen(f.OpenPath(), mode, err)
		return err
	}
	f.archive = archive

	if err := f.openMember(); err != nil {
		archive.Close()
		f.archive = nil
		f.Logger().LogOpen(f.OpenPath(), mode, err)
		return err
	}
	f.MarkOpen()
	f.Logger().LogOpen(f.OpenPath(), mode, nil)
	return nil
}

func (f *File) openMember() error {
	entry, err := locate(&f.archive.Reader, f.Member(), f.Filename().Delimiter())
	if err != nil {
		return f.PathErr("open", err)
	}
	rc, err := entry.Open()
	if err != nil {
		return f.PathErr("open", err)
	}
	f.rc = rc
	f.pos = 0
	f.size = int64(entry.UncompressedSize64)
	f.SetEOF(false)
	return nil
}

// locate finds member in r: an exact match first, then a case-insensitive
// one. An empty member means the first entry.
func locate(r *zip.Reader, member string, delim byte) (*zip.File, error) {
	if member == "" {
		if len(r.File) == 0 {
			return nil, vfs.ErrNotExist
		}
		if first := r.File[0]; !first.FileInfo().IsDir() {
			return first, nil
		}
		return nil, vfs.ErrIsDir
	}

	name := normalizePath(member, delim)
	var found *zip.File
	for _, zf := range r.File {
		if zf.Name == name {
			found = zf
			break
		}
	}
	if found == nil {
		for _, zf := range r.File {
			if strings.EqualFold(zf.Name, name) {
				found = zf
				break
			}
		}
	}
	if found == nil {
		return nil, vfs.ErrNotExist
	}
	if found.FileInfo().IsDir() {
		return nil, vfs.ErrIsDir
	}
	return found, nil
}

// normalizePath converts a member path to archive form with forward slashes.
func normalizePath(p string, delim byte) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if delim != '/' && delim != '\\' {
		p = strings.ReplaceAll(p, string(delim), "/")
	}
	return strings.TrimPrefix(p, "/")
}

func mapError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", vfs.ErrNotExist, err)
	}
	return err
}

// Close releases the member and the archive.
func (f *File) Close() error {
	if !f.IsOpen() {
		return nil
	}
	var err error
	if f.rc != nil {
		err = f.rc.Close()
	}
	if cerr := f.archive.Close(); err == nil {
		err = cerr
	}
	f.rc, f.archive = nil, nil
	f.pos = vfs.Invalid
	f.MarkClosed()
	return f.PathErr("close", err)
}

// Flush is a no-op; members are read-only.
func (f *File) Flush() error {
	if !f.IsOpen() {
		return f.PathErr("flush", vfs.ErrClosed)
	}
	return nil
}

// Read decompresses from the member, filling p as far as possible.
func (f *File) Read(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("read", vfs.ErrClosed)
	}
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		n, err := f.rc.Read(p[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			f.pos += int64(total)
			return total, f.PathErr("read", err)
		}
		if n == 0 {
			break
		}
	}
	f.pos += int64(total)

	if total == 0 {
		f.SetEOF(true)
		return 0, io.EOF
	}
	return total, nil
}

// ReadByte reads one decompressed byte.
func (f *File) ReadByte() (byte, error) {
	return vfs.ReadByteFrom(f)
}

// Write is not supported for archive members.
func (f *File) Write(p []byte) (int, error) {
	f.Logger().LogUnsupported("write", f.OpenPath(), vfs.TypeZip)
	return 0, f.PathErr("write", vfs.ErrNotSupported)
}

// SeekTo is not supported for archive members.
func (f *File) SeekTo(offset int64, anchor vfs.Anchor) (int64, error) {
	if !f.IsOpen() {
		return vfs.Invalid, f.PathErr("seek", vfs.ErrClosed)
	}
	f.Logger().LogUnsupported("seek", f.OpenPath(), vfs.TypeZip)
	return vfs.Invalid, f.PathErr("seek", vfs.ErrNotSupported)
}

// Tell returns the number of bytes read from the member.
func (f *File) Tell() int64 {
	if !f.IsOpen() {
		return vfs.Invalid
	}
	return f.pos
}

// Length returns the uncompressed size from the archive directory. On a
// closed handle the archive is opened and closed again to find it.
func (f *File) Length() int64 {
	if f.size != vfs.Invalid {
		return f.size
	}
	r, err := zip.OpenReader(f.ArchivePath())
	if err != nil {
		return vfs.Invalid
	}
	defer r.Close()
	entry, err := locate(&r.Reader, f.Member(), f.Filename().Delimiter())
	if err != nil {
		return vfs.Invalid
	}
	f.size = int64(entry.UncompressedSize64)
	return f.size
}

// Entries lists the distinct entry names of the archive at path, sorted,
// in archive form with forward slashes.
func Entries(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, vfs.WrapPathErr("list", path, mapError(err))
	}
	defer r.Close()

	names := strset.New()
	for _, zf := range r.File {
		if zf.Name != "" && zf.Name != "/" {
			names.Add(zf.Name)
		}
	}
	list := names.List()
	sort.Strings(list)
	return list, nil
}
