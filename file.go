package vfs

import "strings"

// Invalid is the position reported by handles that are not open and the
// result of a failed seek.
const Invalid int64 = -1

// DefaultBufferSize is the size of the I/O buffer a handle allocates on open.
const DefaultBufferSize = 4096

// Anchor selects the reference point of a seek.
type Anchor int

const (
	// SeekStart measures the offset from the beginning of the content.
	SeekStart Anchor = iota
	// SeekCurrent measures the offset from the cursor.
	SeekCurrent
	// SeekEnd measures the offset backwards from the end: the target is
	// length - offset.
	SeekEnd
)

func (a Anchor) String() string {
	switch a {
	case SeekStart:
		return "start"
	case SeekCurrent:
		return "current"
	case SeekEnd:
		return "end"
	default:
		return "unknown"
	}
}

// OpenMode is the set of flags a handle is opened with. No combination is
// rejected here; backends decide what they support.
type OpenMode struct {
	Binary   bool
	Read     bool
	Write    bool
	Append   bool
	Create   bool
	Truncate bool
}

// DefaultMode is binary read-only access.
var DefaultMode = OpenMode{Binary: true, Read: true}

// ParseOpenMode converts an fopen style mode string such as "rb+" or "w".
// Unknown characters are ignored.
func ParseOpenMode(s string) OpenMode {
	var m OpenMode
	for _, c := range s {
		switch c {
		case 'r':
			m.Read = true
		case 'w':
			m.Write = true
			m.Create = true
			m.Truncate = true
		case 'a':
			m.Write = true
			m.Append = true
			m.Create = true
		case '+':
			m.Read = true
			m.Write = true
		case 'b':
			m.Binary = true
		}
	}
	return m
}

// String renders the mode in fopen form.
func (m OpenMode) String() string {
	var b strings.Builder
	switch {
	case m.Append:
		b.WriteByte('a')
	case m.Write && (m.Truncate || !m.Read):
		b.WriteByte('w')
	default:
		b.WriteByte('r')
	}
	if m.Binary {
		b.WriteByte('b')
	}
	if m.Read && m.Write {
		b.WriteByte('+')
	}
	return b.String()
}

// File is the contract every backend implements.
//
// Position-returning calls report Invalid when the handle is not open or the
// operation fails. Read and Write return the transferred count; a failure is
// reported as a zero count with a *PathError. A read of a non-empty buffer
// that transfers nothing returns io.EOF and leaves EOF() true, so every File
// is an io.Reader and io.Writer.
type File interface {
	// Type names the backend.
	Type() Type
	// Filename returns the path the handle refers to.
	Filename() Filename
	// SetFilename re-targets a closed handle.
	SetFilename(name Filename)
	// OpenPath is the resolved path used to acquire the resource.
	OpenPath() string

	Mode() OpenMode
	SetMode(mode OpenMode)

	// Open acquires the resource with the stored mode.
	Open() error
	// OpenWith stores mode and opens with it.
	OpenWith(mode OpenMode) error
	// Close releases the resource. Closing a closed handle is a no-op.
	// Afterwards the handle reports closed and cursor queries return
	// Invalid, even for handles wrapping a file they do not own.
	Close() error
	Flush() error
	IsOpen() bool
	EOF() bool

	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	ReadByte() (byte, error)

	// SeekTo moves the cursor relative to anchor and returns the new
	// position. With SeekEnd the target is length - offset.
	SeekTo(offset int64, anchor Anchor) (int64, error)
	Tell() int64
	Length() int64

	BufferSize() int
	SetBufferSize(n int) int
	Buffer() []byte
}

// SeekTarget applies the common seek contract to a cursor at pos within
// content of the given length. It returns the cursor to adopt, whether the
// cursor ended up beyond the end, and whether the seek succeeded.
//
// Start and current anchors must land inside [0, length]: a negative target
// clamps to 0 and fails, a target past the end clamps to length, marks the
// past-end state and fails. The end anchor accepts any non-negative target,
// including one beyond length; a negative target clamps to 0 and fails.
func SeekTarget(pos, length, offset int64, anchor Anchor) (target int64, pastEnd bool, err error) {
	switch anchor {
	case SeekStart:
		target = offset
	case SeekCurrent:
		target = pos + offset
	case SeekEnd:
		target = length - offset
		if target < 0 {
			return 0, false, ErrInvalidOffset
		}
		return target, false, nil
	default:
		return pos, false, ErrInvalidWhence
	}

	if target < 0 {
		return 0, false, ErrInvalidOffset
	}
	if target > length {
		return length, true, ErrInvalidOffset
	}
	return target, false, nil
}
