package vfs

import (
	"bytes"
	"fmt"
	"io"
)

// handleBuffer returns the handle's own buffer, or a fresh one of the
// handle's configured size.
func handleBuffer(f File) []byte {
	if buf := f.Buffer(); len(buf) > 0 {
		return buf
	}
	return make([]byte, f.BufferSize())
}

// ReadAll reads f from its current position until end of file.
func ReadAll(f File) ([]byte, error) {
	if !f.IsOpen() {
		return nil, WrapPathErr("read", f.OpenPath(), ErrClosed)
	}
	var out bytes.Buffer
	if n := f.Length(); n > 0 {
		if pos := f.Tell(); pos >= 0 && pos < n {
			out.Grow(int(n - pos))
		}
	}
	if _, err := io.CopyBuffer(&out, f, handleBuffer(f)); err != nil {
		return out.Bytes(), err
	}
	return out.Bytes(), nil
}

// Copy streams the remaining content of src into dst through src's buffer
// and returns the number of bytes written.
func Copy(dst, src File) (int64, error) {
	if !src.IsOpen() {
		return 0, WrapPathErr("read", src.OpenPath(), ErrClosed)
	}
	if !dst.IsOpen() {
		return 0, WrapPathErr("write", dst.OpenPath(), ErrClosed)
	}
	return io.CopyBuffer(dst, src, handleBuffer(src))
}

// Printf formats according to a format specifier and writes to f.
func Printf(f File, format string, args ...any) (int, error) {
	return f.Write([]byte(fmt.Sprintf(format, args...)))
}
