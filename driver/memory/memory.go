// Package memory provides a vfs.File backed by a growable byte slice.
package memory

import (
	"io"

	"github.com/gobeaver/vfs"
)

// Config holds configuration for the memory backend
type Config struct {
	// MaxSize is the maximum content size in bytes (0 = unlimited)
	MaxSize int64
}

// File keeps its content in memory. The content survives Close, so a
// handle can be written, closed and reopened for reading.
type File struct {
	vfs.BaseFile

	data    []byte
	pos     int64
	pastEnd int64 // 1 after a read hit the end or a seek overshot it
	maxSize int64
}

var _ vfs.File = (*File)(nil)

// New creates an empty in-memory file named name.
func New(name vfs.Filename, cfg ...Config) *File {
	f := &File{
		BaseFile: vfs.NewBaseFile(name, vfs.DefaultMode),
		pos:      vfs.Invalid,
	}
	if len(cfg) > 0 {
		f.maxSize = cfg[0].MaxSize
	}
	return f
}

// NewFromBytes creates an in-memory file holding data. The slice is owned
// by the file afterwards.
func NewFromBytes(name vfs.Filename, data []byte, cfg ...Config) *File {
	f := New(name, cfg...)
	f.data = data
	return f
}

// Type reports vfs.TypeMemory.
func (f *File) Type() vfs.Type { return vfs.TypeMemory }

// Open opens the file with its stored mode.
func (f *File) Open() error {
	return f.OpenWith(f.Mode())
}

// OpenWith opens the file with mode. The truncate flag discards existing
// content.
func (f *File) OpenWith(mode vfs.OpenMode) error {
	if f.IsOpen() {
		if err := f.Close(); err != nil {
			return err
		}
	}
	f.SetMode(mode)
	if mode.Truncate {
		f.data = f.data[:0]
	}
	f.pos = 0
	f.pastEnd = 0
	f.MarkOpen()
	f.Logger().LogOpen(f.OpenPath(), mode, nil)
	return nil
}

// Close invalidates the cursor. It is safe to call more than once.
func (f *File) Close() error {
	if !f.IsOpen() {
		return nil
	}
	f.pos = vfs.Invalid
	f.pastEnd = 0
	f.MarkClosed()
	return nil
}

// Flush is a no-op on an open handle; the content lives in memory.
func (f *File) Flush() error {
	if !f.IsOpen() {
		return f.PathErr("flush", vfs.ErrClosed)
	}
	return nil
}

// EOF reports whether the cursor has passed the end of the content.
func (f *File) EOF() bool {
	if !f.IsOpen() {
		return true
	}
	return f.pos+f.pastEnd > int64(len(f.data))
}

// Read copies from the cursor and advances it.
func (f *File) Read(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("read", vfs.ErrClosed)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.pos >= int64(len(f.data)) {
		f.pastEnd = 1
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	f.pastEnd = 0
	return n, nil
}

// ReadByte reads one byte at the cursor.
func (f *File) ReadByte() (byte, error) {
	return vfs.ReadByteFrom(f)
}

// Write stores p at the cursor, growing the content as needed. With the
// append flag the cursor moves to the end first.
func (f *File) Write(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("write", vfs.ErrClosed)
	}
	if !f.Mode().Write {
		return 0, f.PathErr("write", vfs.ErrNotAllowed)
	}
	if f.Mode().Append {
		f.pos = int64(len(f.data))
	}

	end := f.pos + int64(len(p))
	if f.maxSize > 0 && end > f.maxSize {
		return 0, f.PathErr("write", vfs.ErrNoSpace)
	}
	if end > int64(len(f.data)) {
		f.grow(end)
	}
	n := copy(f.data[f.pos:], p)
	f.pos += int64(n)
	f.pastEnd = 0
	return n, nil
}

// grow extends the content to n bytes, zero-filling the new tail.
func (f *File) grow(n int64) {
	if n <= int64(cap(f.data)) {
		old := len(f.data)
		f.data = f.data[:n]
		clear(f.data[old:])
		return
	}
	data := make([]byte, n, max(n, 2*int64(cap(f.data))))
	copy(data, f.data)
	f.data = data
}

// Seek moves the cursor. See vfs.SeekTarget for the rules.
func (f *File) SeekTo(offset int64, anchor vfs.Anchor) (int64, error) {
	if !f.IsOpen() {
		return vfs.Invalid, f.PathErr("seek", vfs.ErrClosed)
	}
	target, past, err := vfs.SeekTarget(f.pos, int64(len(f.data)), offset, anchor)
	if err == vfs.ErrInvalidWhence {
		return vfs.Invalid, f.PathErr("seek", err)
	}
	f.pos = target
	f.pastEnd = 0
	if past {
		f.pastEnd = 1
	}
	if err != nil {
		return vfs.Invalid, f.PathErr("seek", err)
	}
	return f.pos, nil
}

// Tell returns the cursor, or vfs.Invalid when closed.
func (f *File) Tell() int64 {
	if !f.IsOpen() {
		return vfs.Invalid
	}
	return f.pos
}

// Length returns the size of the content, or vfs.Invalid when closed.
func (f *File) Length() int64 {
	if !f.IsOpen() {
		return vfs.Invalid
	}
	return int64(len(f.data))
}

// Bytes returns the content. The slice aliases the store until the next
// write.
func (f *File) Bytes() []byte {
	return f.data
}

// Resize sets the content length to n, zero-filling when it grows.
func (f *File) Resize(n int64) error {
	if n < 0 {
		return f.PathErr("resize", vfs.ErrInvalidOffset)
	}
	if f.maxSize > 0 && n > f.maxSize {
		return f.PathErr("resize", vfs.ErrNoSpace)
	}
	if n > int64(len(f.data)) {
		f.grow(n)
	} else {
		f.data = f.data[:n]
	}
	return nil
}

// Reserve makes room for at least n bytes without changing the length.
func (f *File) Reserve(n int64) {
	if n <= int64(cap(f.data)) {
		return
	}
	data := make([]byte, len(f.data), n)
	copy(data, f.data)
	f.data = data
}
