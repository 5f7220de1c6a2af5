package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/driver/memory"
)

func TestReadOnly(t *testing.T) {
	inner := memory.NewFromBytes(vfs.ParseFilename("ro.txt"), []byte("data"))
	ro := vfs.ReadOnly(inner)
	assert.Same(t, ro, vfs.ReadOnly(ro))
	assert.Same(t, inner, ro.Unwrap())

	err := ro.OpenWith(vfs.ParseOpenMode("r+"))
	assert.ErrorIs(t, err, vfs.ErrReadOnly)
	assert.ErrorIs(t, err, vfs.ErrNotAllowed)
	assert.False(t, ro.IsOpen())

	ro.SetMode(vfs.ParseOpenMode("a"))
	assert.ErrorIs(t, ro.Open(), vfs.ErrReadOnly)

	require.NoError(t, ro.OpenWith(vfs.DefaultMode))
	defer ro.Close()
	assert.Equal(t, vfs.TypeMemory, ro.Type())

	n, err := ro.Write([]byte("x"))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, vfs.ErrReadOnly)

	got, err := vfs.ReadAll(ro)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
