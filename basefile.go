package vfs

import "io"

// BaseFile is the state every backend shares: the target path, the open
// mode, the end-of-file flag, the open flag and the I/O buffer. Backends
// embed it and call MarkOpen and MarkClosed from their own Open and Close.
type BaseFile struct {
	name    Filename
	mode    OpenMode
	eof     bool
	open    bool
	bufSize int
	buf     []byte
	log     *Logger
}

// NewBaseFile returns shared state for name with the given default mode.
func NewBaseFile(name Filename, mode OpenMode) BaseFile {
	return BaseFile{name: name, mode: mode, bufSize: DefaultBufferSize}
}

func (b *BaseFile) Filename() Filename { return b.name }

// SetFilename re-targets the handle. It takes effect on the next open.
func (b *BaseFile) SetFilename(name Filename) { b.name = name }

func (b *BaseFile) OpenPath() string { return b.name.OpenPath() }

func (b *BaseFile) Mode() OpenMode { return b.mode }

func (b *BaseFile) SetMode(mode OpenMode) { b.mode = mode }

func (b *BaseFile) IsOpen() bool { return b.open }

// EOF reports the end-of-file flag. Handles that are not open are always at
// end of file.
func (b *BaseFile) EOF() bool { return !b.open || b.eof }

// SetEOF sets the end-of-file flag.
func (b *BaseFile) SetEOF(eof bool) { b.eof = eof }

// BufferSize returns the size of the buffer allocated on the next open.
func (b *BaseFile) BufferSize() int {
	if b.bufSize <= 0 {
		return DefaultBufferSize
	}
	return b.bufSize
}

// SetBufferSize changes the buffer size and returns the previous one. An
// open handle gets a fresh buffer right away.
func (b *BaseFile) SetBufferSize(n int) int {
	prev := b.BufferSize()
	if n <= 0 {
		n = DefaultBufferSize
	}
	b.bufSize = n
	if b.open {
		b.buf = make([]byte, n)
	}
	return prev
}

// Buffer returns the buffer owned by the open handle, or nil when closed.
func (b *BaseFile) Buffer() []byte { return b.buf }

// Logger returns the logger diagnostics are written to.
func (b *BaseFile) Logger() *Logger {
	if b.log == nil {
		return DefaultLogger()
	}
	return b.log
}

// SetLogger replaces the logger.
func (b *BaseFile) SetLogger(l *Logger) { b.log = l }

// MarkOpen records a successful open: the EOF flag is cleared and the
// buffer allocated.
func (b *BaseFile) MarkOpen() {
	b.open = true
	b.eof = false
	b.buf = make([]byte, b.BufferSize())
}

// MarkClosed records a close: the buffer is released and the EOF flag
// cleared.
func (b *BaseFile) MarkClosed() {
	b.open = false
	b.eof = false
	b.buf = nil
}

// PathErr wraps err with the operation and the handle's open path.
func (b *BaseFile) PathErr(op string, err error) error {
	return WrapPathErr(op, b.name.OpenPath(), err)
}

// ReadByteFrom reads a single byte from r, reporting io.EOF when nothing
// could be read. Backends use it to implement ReadByte on top of Read.
func ReadByteFrom(r io.Reader) (byte, error) {
	var one [1]byte
	n, err := r.Read(one[:])
	if n == 1 {
		return one[0], nil
	}
	if err == nil {
		err = io.EOF
	}
	return 0, err
}
