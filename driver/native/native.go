// Package native provides vfs.File handles for operating system files and
// a scanner over directory trees.
package native

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gobeaver/vfs"
)

// File is a handle on an operating system file. Writes are buffered with
// the handle's buffer size and flushed before any read, seek or close.
type File struct {
	vfs.BaseFile

	f     *os.File
	w     *bufio.Writer
	owned bool
}

var _ vfs.File = (*File)(nil)

// New creates a closed handle for name.
func New(name vfs.Filename) *File {
	return &File{BaseFile: vfs.NewBaseFile(name, vfs.DefaultMode)}
}

// FromOS wraps an already open file. When owned is false Close flushes and
// detaches the handle but leaves the file itself open; this is how the
// standard streams are exposed.
func FromOS(name vfs.Filename, f *os.File, mode vfs.OpenMode, owned bool) *File {
	h := &File{
		BaseFile: vfs.NewBaseFile(name, mode),
		f:        f,
		owned:    owned,
	}
	h.MarkOpen()
	if mode.Write {
		h.w = bufio.NewWriterSize(f, h.BufferSize())
	}
	return h
}

// Stdin returns a pass-through handle on standard input.
func Stdin() *File {
	return FromOS(vfs.NewFilename("<stdin>", ""), os.Stdin, vfs.OpenMode{Binary: true, Read: true}, false)
}

// Stdout returns a pass-through handle on standard output.
func Stdout() *File {
	return FromOS(vfs.NewFilename("<stdout>", ""), os.Stdout, vfs.OpenMode{Binary: true, Write: true}, false)
}

// Stderr returns a pass-through handle on standard error.
func Stderr() *File {
	return FromOS(vfs.NewFilename("<stderr>", ""), os.Stderr, vfs.OpenMode{Binary: true, Write: true}, false)
}

// Type reports vfs.TypeNative.
func (f *File) Type() vfs.Type { return vfs.TypeNative }

// OSFile exposes the underlying file, nil when closed.
func (f *File) OSFile() *os.File { return f.f }

// Open opens the file with the stored mode.
func (f *File) Open() error {
	return f.OpenWith(f.Mode())
}

// OpenWith opens the file with mode, closing it first when already open.
// Directories are rejected with vfs.ErrIsDir.
func (f *File) OpenWith(mode vfs.OpenMode) error {
	if f.IsOpen() {
		if err := f.Close(); err != nil {
			return err
		}
	}
	f.SetMode(mode)

	path := f.OpenPath()
	osf, err := os.OpenFile(path, openFlags(mode), 0o644)
	if err == nil {
		var info os.FileInfo
		if info, err = osf.Stat(); err == nil && info.IsDir() {
			err = vfs.ErrIsDir
		}
		if err != nil {
			osf.Close()
		}
	}
	if err != nil {
		err = f.PathErr("open", mapError(err))
		f.Logger().LogOpen(path, mode, err)
		return err
	}

	f.f = osf
	f.owned = true
	f.MarkOpen()
	if mode.Write {
		f.w = bufio.NewWriterSize(osf, f.BufferSize())
	}
	f.Logger().LogOpen(path, mode, nil)
	return nil
}

func openFlags(mode vfs.OpenMode) int {
	var flags int
	switch {
	case mode.Read && mode.Write:
		flags = os.O_RDWR
	case mode.Write:
		flags = os.O_WRONLY
	default:
		flags = os.O_RDONLY
	}
	if mode.Create {
		flags |= os.O_CREATE
	}
	if mode.Truncate {
		flags |= os.O_TRUNC
	}
	if mode.Append {
		flags |= os.O_APPEND
	}
	return flags
}

func mapError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", vfs.ErrNotExist, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", vfs.ErrPermission, err)
	default:
		return err
	}
}

// Close flushes and detaches the handle. Only owned files are closed.
func (f *File) Close() error {
	if !f.IsOpen() {
		return nil
	}
	err := f.Flush()
	if f.owned {
		if cerr := f.f.Close(); err == nil && cerr != nil {
			err = f.PathErr("close", cerr)
		}
	}
	f.f = nil
	f.w = nil
	f.MarkClosed()
	return err
}

// Flush writes buffered data to the file.
func (f *File) Flush() error {
	if !f.IsOpen() {
		return f.PathErr("flush", vfs.ErrClosed)
	}
	if f.w == nil || f.w.Buffered() == 0 {
		return nil
	}
	return f.PathErr("flush", f.w.Flush())
}

// Read flushes pending writes and reads at the cursor.
func (f *File) Read(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("read", vfs.ErrClosed)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := f.Flush(); err != nil {
		return 0, err
	}
	n, err := f.f.Read(p)
	if n > 0 {
		f.SetEOF(false)
		return n, nil
	}
	if err == io.EOF {
		f.SetEOF(true)
		return 0, io.EOF
	}
	return 0, f.PathErr("read", err)
}

// ReadByte reads one byte at the cursor.
func (f *File) ReadByte() (byte, error) {
	return vfs.ReadByteFrom(f)
}

// Write buffers p; it reaches the file on Flush, Close or the next read.
func (f *File) Write(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("write", vfs.ErrClosed)
	}
	if f.w == nil {
		return 0, f.PathErr("write", vfs.ErrNotAllowed)
	}
	n, err := f.w.Write(p)
	if err != nil {
		return n, f.PathErr("write", err)
	}
	return n, nil
}

// SeekTo flushes pending writes and moves the file offset.
func (f *File) SeekTo(offset int64, anchor vfs.Anchor) (int64, error) {
	if !f.IsOpen() {
		return vfs.Invalid, f.PathErr("seek", vfs.ErrClosed)
	}
	if err := f.Flush(); err != nil {
		return vfs.Invalid, err
	}
	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return vfs.Invalid, f.PathErr("seek", err)
	}
	info, err := f.f.Stat()
	if err != nil {
		return vfs.Invalid, f.PathErr("seek", err)
	}

	target, past, serr := vfs.SeekTarget(pos, info.Size(), offset, anchor)
	if serr == vfs.ErrInvalidWhence {
		return vfs.Invalid, f.PathErr("seek", serr)
	}
	if _, err := f.f.Seek(target, io.SeekStart); err != nil {
		return vfs.Invalid, f.PathErr("seek", err)
	}
	f.SetEOF(past)
	if serr != nil {
		return vfs.Invalid, f.PathErr("seek", serr)
	}
	return target, nil
}

// Tell returns the cursor including buffered writes.
func (f *File) Tell() int64 {
	if !f.IsOpen() {
		return vfs.Invalid
	}
	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return vfs.Invalid
	}
	if f.w != nil {
		pos += int64(f.w.Buffered())
	}
	return pos
}

// Length returns the file size after flushing, or vfs.Invalid when closed.
func (f *File) Length() int64 {
	if !f.IsOpen() {
		return vfs.Invalid
	}
	if err := f.Flush(); err != nil {
		return vfs.Invalid
	}
	info, err := f.f.Stat()
	if err != nil {
		return vfs.Invalid
	}
	return info.Size()
}
