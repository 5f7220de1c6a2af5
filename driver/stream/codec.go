package stream

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gobeaver/vfs"
)

// Codec turns a raw byte stream into a compressed one and back.
type Codec interface {
	// Type is the backend type handles using this codec report.
	Type() vfs.Type
	NewReader(r io.Reader) (io.ReadCloser, error)
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

type flusher interface {
	Flush() error
}

// Gzip returns the gzip codec. Level follows compress/flate; -1 selects the
// default.
func Gzip(level int) Codec {
	return gzipCodec{level: level}
}

type gzipCodec struct {
	level int
}

func (gzipCodec) Type() vfs.Type { return vfs.TypeGzip }

func (gzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (c gzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, c.level)
}

// Zstd returns the zstd codec. Level uses the zstd command line scale;
// zero or less selects the default.
func Zstd(level int) Codec {
	return zstdCodec{level: level}
}

type zstdCodec struct {
	level int
}

func (zstdCodec) Type() vfs.Type { return vfs.TypeZstd }

func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

func (c zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := zstd.SpeedDefault
	if c.level > 0 {
		level = zstd.EncoderLevelFromZstd(c.level)
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(level))
}

// LZ4 returns the lz4 frame codec.
func LZ4() Codec {
	return lz4Codec{}
}

type lz4Codec struct{}

func (lz4Codec) Type() vfs.Type { return vfs.TypeLZ4 }

func (lz4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

func (lz4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

// CodecFor returns the codec for a compressed stream type, or nil.
func CodecFor(t vfs.Type, gzipLevel int) Codec {
	switch t {
	case vfs.TypeGzip:
		return Gzip(gzipLevel)
	case vfs.TypeZstd:
		return Zstd(0)
	case vfs.TypeLZ4:
		return LZ4()
	default:
		return nil
	}
}
