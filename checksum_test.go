package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/driver/memory"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		algo vfs.ChecksumAlgorithm
		want string
	}{
		{vfs.ChecksumMD5, "5eb63bbbe01eeed093cb22bb8f5acdc3"},
		{vfs.ChecksumSHA1, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"},
		{vfs.ChecksumSHA256, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{vfs.ChecksumCRC32, "0d4a1185"},
		{vfs.ChecksumXXHash, "45ab6734b21e6968"},
	}
	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			f := openMemory(t, "hello world")
			got, err := vfs.Checksum(f, tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksums(t *testing.T) {
	f := openMemory(t, "hello world")
	sums, err := vfs.Checksums(f, []vfs.ChecksumAlgorithm{vfs.ChecksumMD5, vfs.ChecksumSHA512})
	require.NoError(t, err)
	assert.Len(t, sums, 2)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", sums[vfs.ChecksumMD5])
	assert.Len(t, sums[vfs.ChecksumSHA512], 128)
}

func TestChecksumErrors(t *testing.T) {
	_, err := vfs.Checksum(openMemory(t, "x"), "whirlpool")
	assert.ErrorIs(t, err, vfs.ErrNotSupported)

	_, err = vfs.Checksums(openMemory(t, "x"), nil)
	assert.Error(t, err)

	_, err = vfs.Checksum(memory.New(vfs.ParseFilename("closed")), vfs.ChecksumMD5)
	assert.ErrorIs(t, err, vfs.ErrClosed)
}
