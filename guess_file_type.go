package vfs

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Type identifies a backend.
type Type int

const (
	TypeUnknown Type = iota
	TypeNative
	TypeMemory
	TypeGzip
	TypeZip
	TypeLZ4
	TypeZstd
)

var typeNames = map[Type]string{
	TypeUnknown: "unknown",
	TypeNative:  "native",
	TypeMemory:  "memory",
	TypeGzip:    "gzip",
	TypeZip:     "zip",
	TypeLZ4:     "lz4",
	TypeZstd:    "zstd",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a backend name such as "gzip" to its Type.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// IsContainer reports whether the backend reads a container format rather
// than plain bytes.
func (t Type) IsContainer() bool {
	switch t {
	case TypeGzip, TypeZip, TypeLZ4, TypeZstd:
		return true
	}
	return false
}

// Signature is a header pattern identifying a container format.
type Signature struct {
	Type  Type
	Magic []byte
}

// signatures are checked in order against the first bytes of a file.
var signatures = []Signature{
	{Type: TypeZip, Magic: []byte{0x50, 0x4B, 0x03, 0x04}},
	{Type: TypeZip, Magic: []byte{0x50, 0x4B, 0x05, 0x06}}, // empty archive
	{Type: TypeGzip, Magic: []byte{0x1F, 0x8B}},
	{Type: TypeZstd, Magic: []byte{0x28, 0xB5, 0x2F, 0xFD}},
	{Type: TypeLZ4, Magic: []byte{0x04, 0x22, 0x4D, 0x18}},
}

// SniffLen is the number of header bytes SniffType looks at.
const SniffLen = 4

// SniffType identifies a container format from the first bytes of a file.
// It returns TypeUnknown when no signature matches.
func SniffType(header []byte) Type {
	for _, sig := range signatures {
		if bytes.HasPrefix(header, sig.Magic) {
			return sig.Type
		}
	}
	return TypeUnknown
}

var extensionToMIME = map[string]string{
	".txt":  "text/plain",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".json": "application/json",
	".xml":  "application/xml",
	".html": "text/html",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".lz4":  "application/x-lz4",
	".zst":  "application/zstd",
	".tar":  "application/x-tar",
}

// GuessContentType determines the MIME type of a file from its name and,
// failing that, from the leading bytes of its content.
func GuessContentType(name Filename, header []byte) string {
	ext := name.Extension(Lower)
	if contentType, ok := extensionToMIME[ext]; ok {
		return contentType
	}
	if len(header) > 0 {
		return http.DetectContentType(header)
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}
