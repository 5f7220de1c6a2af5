package stream

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobeaver/vfs"
)

var payload = bytes.Repeat([]byte("0123456789abcdef"), 1024)

func codecs() map[string]func(vfs.Filename) *File {
	return map[string]func(vfs.Filename) *File{
		"gzip": NewGzip,
		"zstd": NewZstd,
		"lz4":  NewLZ4,
	}
}

func writeStream(t *testing.T, f *File, data []byte) {
	t.Helper()
	require.NoError(t, f.OpenWith(vfs.ParseOpenMode("wb")))
	n, err := f.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, f.Close())
}

func TestRoundTrip(t *testing.T) {
	for name, newFile := range codecs() {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data."+name)
			f := newFile(vfs.ParseFilename(path))
			writeStream(t, f, payload)

			require.NoError(t, f.OpenWith(vfs.DefaultMode))
			defer f.Close()

			got, err := vfs.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.True(t, f.EOF())
			assert.Equal(t, int64(len(payload)), f.Tell())
		})
	}
}

func TestTypes(t *testing.T) {
	name := vfs.ParseFilename("x")
	assert.Equal(t, vfs.TypeGzip, NewGzip(name).Type())
	assert.Equal(t, vfs.TypeZstd, NewZstd(name).Type())
	assert.Equal(t, vfs.TypeLZ4, NewLZ4(name).Type())
	assert.Nil(t, CodecFor(vfs.TypeZip, -1))
	assert.Equal(t, vfs.TypeGzip, CodecFor(vfs.TypeGzip, 9).Type())
}

func TestMagic(t *testing.T) {
	for name, newFile := range codecs() {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data")
			f := newFile(vfs.ParseFilename(path))
			writeStream(t, f, payload)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, f.Type(), vfs.SniffType(raw[:vfs.SniffLen]))
		})
	}
}

func TestSeekRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.gz")
	f := NewGzip(vfs.ParseFilename(path))
	writeStream(t, f, payload)

	require.NoError(t, f.OpenWith(vfs.DefaultMode))
	defer f.Close()

	pos, err := f.SeekTo(100, vfs.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(100), pos)

	b, err := f.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, payload[100], b)

	pos, err = f.SeekTo(-51, vfs.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(50), pos)

	b, err = f.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, payload[50], b)

	pos, err = f.SeekTo(1, vfs.SeekEnd)
	assert.Equal(t, vfs.Invalid, pos)
	assert.True(t, vfs.IsNotSupported(err))

	pos, err = f.SeekTo(int64(len(payload))+10, vfs.SeekStart)
	assert.Equal(t, vfs.Invalid, pos)
	assert.ErrorIs(t, err, vfs.ErrInvalidOffset)
	assert.True(t, f.EOF())
	assert.Equal(t, int64(len(payload)), f.Tell())

	pos, err = f.SeekTo(0, vfs.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
	assert.False(t, f.EOF())
}

func TestSeekWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.zst")
	f := NewZstd(vfs.ParseFilename(path))
	require.NoError(t, f.OpenWith(vfs.ParseOpenMode("w")))

	_, err := f.Write([]byte("ab"))
	require.NoError(t, err)
	pos, err := f.SeekTo(3, vfs.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)
	_, err = f.Write([]byte("c"))
	require.NoError(t, err)

	pos, err = f.SeekTo(0, vfs.SeekStart)
	assert.Equal(t, vfs.Invalid, pos)
	assert.True(t, vfs.IsNotSupported(err))

	require.NoError(t, f.Flush())
	require.NoError(t, f.Close())

	require.NoError(t, f.OpenWith(vfs.DefaultMode))
	defer f.Close()
	got, err := vfs.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab\x00\x00\x00c"), got)
}

func TestModes(t *testing.T) {
	dir := t.TempDir()

	t.Run("read write rejected", func(t *testing.T) {
		f := NewGzip(vfs.ParseFilename(filepath.Join(dir, "rw.gz")))
		err := f.OpenWith(vfs.ParseOpenMode("rb+"))
		assert.True(t, vfs.IsNotSupported(err))
		assert.False(t, f.IsOpen())
	})

	t.Run("reader refuses writes", func(t *testing.T) {
		path := filepath.Join(dir, "ro.gz")
		f := NewGzip(vfs.ParseFilename(path))
		writeStream(t, f, []byte("x"))
		require.NoError(t, f.OpenWith(vfs.DefaultMode))
		defer f.Close()
		n, err := f.Write([]byte("y"))
		assert.Zero(t, n)
		assert.ErrorIs(t, err, vfs.ErrNotAllowed)
	})

	t.Run("writer refuses reads", func(t *testing.T) {
		f := NewLZ4(vfs.ParseFilename(filepath.Join(dir, "wo.lz4")))
		require.NoError(t, f.OpenWith(vfs.ParseOpenMode("w")))
		defer f.Close()
		_, err := f.Read(make([]byte, 1))
		assert.ErrorIs(t, err, vfs.ErrNotAllowed)
	})

	t.Run("append adds a member", func(t *testing.T) {
		path := filepath.Join(dir, "multi.gz")
		f := NewGzip(vfs.ParseFilename(path))
		writeStream(t, f, []byte("first "))
		require.NoError(t, f.OpenWith(vfs.ParseOpenMode("ab")))
		_, err := f.Write([]byte("second"))
		require.NoError(t, err)
		require.NoError(t, f.Close())

		require.NoError(t, f.OpenWith(vfs.DefaultMode))
		defer f.Close()
		got, err := vfs.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "first second", string(got))
	})

	t.Run("not a gzip file", func(t *testing.T) {
		path := filepath.Join(dir, "plain.gz")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
		f := NewGzip(vfs.ParseFilename(path))
		assert.Error(t, f.Open())
		assert.False(t, f.IsOpen())
	})

	t.Run("missing file", func(t *testing.T) {
		f := NewGzip(vfs.ParseFilename(filepath.Join(dir, "missing.gz")))
		assert.Error(t, f.Open())
	})
}

func TestUnopened(t *testing.T) {
	f := NewGzip(vfs.ParseFilename("nothing.gz"))
	assert.Equal(t, vfs.Invalid, f.Tell())
	assert.Equal(t, vfs.Invalid, f.Length())
	assert.True(t, f.EOF())
	pos, err := f.SeekTo(0, vfs.SeekStart)
	assert.Equal(t, vfs.Invalid, pos)
	assert.ErrorIs(t, err, vfs.ErrClosed)
	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, vfs.ErrClosed)
	assert.NoError(t, f.Close())
}

func TestLengthUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.lz4")
	f := NewLZ4(vfs.ParseFilename(path))
	writeStream(t, f, payload)
	require.NoError(t, f.OpenWith(vfs.DefaultMode))
	defer f.Close()
	assert.Equal(t, vfs.Invalid, f.Length())

	n, err := io.ReadFull(f, make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}
