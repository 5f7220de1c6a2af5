// Package stream provides vfs.File handles on compressed files: gzip, zstd
// and lz4. A handle is either read-only or write-only. The decompressed
// length is never known, so Length reports vfs.Invalid and the end anchor
// cannot be used for seeking.
package stream

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/gobeaver/vfs"
)

// MaxTransfer is the largest count handed to the codec in one call.
const MaxTransfer = math.MaxInt32

// File is a compressed stream handle.
type File struct {
	vfs.BaseFile

	codec Codec
	f     *os.File
	r     io.ReadCloser
	w     io.WriteCloser
	pos   int64
}

var _ vfs.File = (*File)(nil)

// New creates a closed handle on name using codec.
func New(name vfs.Filename, codec Codec) *File {
	return &File{
		BaseFile: vfs.NewBaseFile(name, vfs.DefaultMode),
		codec:    codec,
		pos:      vfs.Invalid,
	}
}

// NewGzip creates a gzip handle with the default compression level.
func NewGzip(name vfs.Filename) *File { return New(name, Gzip(-1)) }

// NewZstd creates a zstd handle with the default compression level.
func NewZstd(name vfs.Filename) *File { return New(name, Zstd(0)) }

// NewLZ4 creates an lz4 handle.
func NewLZ4(name vfs.Filename) *File { return New(name, LZ4()) }

// Type reports the backend type of the codec.
func (f *File) Type() vfs.Type { return f.codec.Type() }

// Open opens the stream with the stored mode.
func (f *File) Open() error {
	return f.OpenWith(f.Mode())
}

// OpenWith opens the stream for reading or, with the write flag, for
// writing. Without the append flag an existing file is truncated.
func (f *File) OpenWith(mode vfs.OpenMode) error {
	if f.IsOpen() {
		if err := f.Close(); err != nil {
			return err
		}
	}
	f.SetMode(mode)

	err := f.open(mode)
	f.Logger().LogOpen(f.OpenPath(), mode, err)
	if err != nil {
		return err
	}
	f.pos = 0
	f.MarkOpen()
	return nil
}

func (f *File) open(mode vfs.OpenMode) error {
	path := f.OpenPath()
	if mode.Read && mode.Write {
		return f.PathErr("open", vfs.ErrNotSupported)
	}

	if mode.Write {
		flags := os.O_WRONLY
		if mode.Create {
			flags |= os.O_CREATE
		}
		if mode.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		osf, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			return f.PathErr("open", mapError(err))
		}
		w, err := f.codec.NewWriter(osf)
		if err != nil {
			osf.Close()
			return f.PathErr("open", err)
		}
		f.f, f.w = osf, w
		return nil
	}

	osf, err := os.Open(path)
	if err != nil {
		return f.PathErr("open", mapError(err))
	}
	r, err := f.codec.NewReader(osf)
	if err != nil {
		osf.Close()
		return f.PathErr("open", err)
	}
	f.f, f.r = osf, r
	return nil
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

// Close finishes the compressed stream when writing and releases the file.
func (f *File) Close() error {
	if !f.IsOpen() {
		return nil
	}
	var err error
	if f.w != nil {
		err = f.w.Close()
	}
	if f.r != nil {
		if cerr := f.r.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.f.Close(); err == nil {
		err = cerr
	}
	f.f, f.r, f.w = nil, nil, nil
	f.pos = vfs.Invalid
	f.MarkClosed()
	return f.PathErr("close", err)
}

// Flush pushes pending compressed data to the file.
func (f *File) Flush() error {
	if !f.IsOpen() {
		return f.PathErr("flush", vfs.ErrClosed)
	}
	if fl, ok := f.w.(flusher); ok {
		return f.PathErr("flush", fl.Flush())
	}
	return nil
}

// Read decompresses into p until it is full or the stream ends.
func (f *File) Read(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("read", vfs.ErrClosed)
	}
	if f.r == nil {
		return 0, f.PathErr("read", vfs.ErrNotAllowed)
	}
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		chunk := min(len(p)-total, MaxTransfer)
		n, err := f.r.Read(p[total : total+chunk])
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

// Write compresses p into the stream.
func (f *File) Write(p []byte) (int, error) {
	if !f.IsOpen() {
		return 0, f.PathErr("write", vfs.ErrClosed)
	}
	if f.w == nil {
		return 0, f.PathErr("write", vfs.ErrNotAllowed)
	}

	total := 0
	for total < len(p) {
		chunk := min(len(p)-total, MaxTransfer)
		n, err := f.w.Write(p[total : total+chunk])
		total += n
		if err != nil {
			f.pos += int64(total)
			return total, f.PathErr("write", err)
		}
	}
	f.pos += int64(total)
	return total, nil
}

// SeekTo moves within the decompressed content. Reading handles skip forward
// by decompressing and rewind the stream to go back. Writing handles can
// only move forward, padding with zeros.
func (f *File) SeekTo(offset int64, anchor vfs.Anchor) (int64, error) {
	if !f.IsOpen() {
		return vfs.Invalid, f.PathErr("seek", vfs.ErrClosed)
	}

	var target int64
	switch anchor {
	case vfs.SeekStart:
		target = offset
	case vfs.SeekCurrent:
		target = f.pos + offset
	case vfs.SeekEnd:
		f.Logger().LogUnsupported("seek from end", f.OpenPath(), f.Type())
		return vfs.Invalid, f.PathErr("seek", vfs.ErrNotSupported)
	default:
		return vfs.Invalid, f.PathErr("seek", vfs.ErrInvalidWhence)
	}

	if f.w != nil {
		return f.seekWrite(target)
	}
	return f.seekRead(target)
}

func (f *File) seekRead(target int64) (int64, error) {
	if target < f.pos {
		if err := f.rewind(); err != nil {
			return vfs.Invalid, err
		}
	}
	if target < 0 {
		return vfs.Invalid, f.PathErr("seek", vfs.ErrInvalidOffset)
	}

	buf := f.Buffer()
	for f.pos < target {
		n := int(min(int64(len(buf)), target-f.pos))
		got, err := f.r.Read(buf[:n])
		f.pos += int64(got)
		if err == io.EOF || (err == nil && got == 0) {
			f.SetEOF(true)
			return vfs.Invalid, f.PathErr("seek", vfs.ErrInvalidOffset)
		}
		if err != nil {
			return vfs.Invalid, f.PathErr("seek", err)
		}
	}
	f.SetEOF(false)
	return f.pos, nil
}

func (f *File) seekWrite(target int64) (int64, error) {
	if target < f.pos {
		return vfs.Invalid, f.PathErr("seek", vfs.ErrNotSupported)
	}
	buf := f.Buffer()
	clear(buf)
	for f.pos < target {
		n := int(min(int64(len(buf)), target-f.pos))
		if _, err := f.Write(buf[:n]); err != nil {
			return vfs.Invalid, err
		}
	}
	return f.pos, nil
}

// rewind restarts decompression from the beginning of the file.
func (f *File) rewind() error {
	if err := f.r.Close(); err != nil {
		return f.PathErr("seek", err)
	}
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		return f.PathErr("seek", err)
	}
	r, err := f.codec.NewReader(f.f)
	if err != nil {
		return f.PathErr("seek", err)
	}
	f.r = r
	f.pos = 0
	f.SetEOF(false)
	return nil
}

// Tell returns the position in the decompressed content.
func (f *File) Tell() int64 {
	if !f.IsOpen() {
		return vfs.Invalid
	}
	return f.pos
}

// Length is unknown for compressed streams.
func (f *File) Length() int64 {
	return vfs.Invalid
}
