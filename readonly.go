package vfs

import "fmt"

// ErrReadOnly is returned when a read-only handle is asked to modify its
// content. It matches ErrNotAllowed.
var ErrReadOnly = fmt.Errorf("%w: handle is read-only", ErrNotAllowed)

// ReadOnlyFile wraps a File and refuses every operation that could modify
// the underlying content. Reads, seeks and queries pass through.
//
// Example:
//
//	h := vfs.ReadOnly(native.New(vfs.ParseFilename("/etc/hosts")))
//	_ = h.Open()
//	_, err := h.Write([]byte("x")) // errors.Is(err, vfs.ErrReadOnly)
type ReadOnlyFile struct {
	File
}

var _ File = (*ReadOnlyFile)(nil)

// ReadOnly returns a read-only view of f. Wrapping twice is a no-op.
func ReadOnly(f File) *ReadOnlyFile {
	if ro, ok := f.(*ReadOnlyFile); ok {
		return ro
	}
	return &ReadOnlyFile{File: f}
}

// Unwrap returns the wrapped handle.
func (r *ReadOnlyFile) Unwrap() File { return r.File }

func writes(mode OpenMode) bool {
	return mode.Write || mode.Append || mode.Truncate || mode.Create
}

// Open refuses a stored mode that could modify the content.
func (r *ReadOnlyFile) Open() error {
	if writes(r.Mode()) {
		return WrapPathErr("open", r.OpenPath(), ErrReadOnly)
	}
	return r.File.Open()
}

func (r *ReadOnlyFile) OpenWith(mode OpenMode) error {
	if writes(mode) {
		return WrapPathErr("open", r.OpenPath(), ErrReadOnly)
	}
	return r.File.OpenWith(mode)
}

// Write always fails with ErrReadOnly.
func (r *ReadOnlyFile) Write(p []byte) (int, error) {
	return 0, WrapPathErr("write", r.OpenPath(), ErrReadOnly)
}
