// Package vfs provides file handles that read through containers as if
// they were directories.
//
// A path such as "backup.zip/etc/hosts" names a member of a zip archive,
// and "dump.sql.zst" names the decompressed content of a zstd stream. The
// package defines the [File] contract every backend implements, the
// [Filename] path value, the [Scanner] contract for wildcard enumeration
// and the shared pieces backends are built from.
//
// # Backends
//
// Each backend lives in its own package below driver/:
//
//   - Native filesystem files (github.com/gobeaver/vfs/driver/native)
//   - In-memory byte slices (github.com/gobeaver/vfs/driver/memory)
//   - gzip, zstd and lz4 streams (github.com/gobeaver/vfs/driver/stream)
//   - Zip archive members (github.com/gobeaver/vfs/driver/zip)
//
// The factory package picks the backend from a path:
//
//	f := factory.New()
//
//	h, err := f.Open("backup.zip/etc/hosts", vfs.DefaultMode, vfs.TypeUnknown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	data, err := vfs.ReadAll(h)
//
// # Handles
//
// A [File] is created closed. Open acquires the underlying resource with
// the handle's [OpenMode]; Close releases it and may be followed by another
// Open. Read and Write follow io.Reader and io.Writer, so handles work with
// the io package:
//
//	n, err := io.Copy(os.Stdout, h)
//
// Positions are byte offsets. Calls that report a position return
// [Invalid] when the handle is closed or the operation failed. Seeking
// with [SeekEnd] counts backwards: an offset of 2 lands two bytes before
// the end.
//
// Not every backend supports every operation. Zip members cannot be
// written or seeked, compressed streams do not know their length. Such
// calls fail with [ErrNotSupported] and leave a warning in the handle's
// logger.
//
// # Scanning
//
// Scanners enumerate the files below a directory, or inside an archive,
// whose names match a wildcard pattern:
//
//	s, err := f.Scanner("logs/*.log", true, vfs.WithExclude("**/old/**"))
//	paths, err := s.Scan()
//
// Patterns support *, ? and [...] sets, see the wildcard package. A
// [Visitor] can prune directories or stop a scan early; [Depth], [Limit]
// and [Chain] cover the common cases.
//
// # Watching
//
// Factory.Watch returns a [ChangeToken] fired by the first change below a
// scan root. Directories are watched through filesystem events, zip
// archives by polling. [OnChange] re-arms a token after every change.
//
// # Configuration
//
// [GetConfig] loads settings from BEAVER_VFS_* environment variables;
// factory.NewFromConfig turns them into a factory:
//
//	BEAVER_VFS_DELIMITER=\
//	BEAVER_VFS_DEFAULT_TYPE=native
//	BEAVER_VFS_EXTENSIONS=.jar=zip,.war=zip
//	BEAVER_VFS_LOG_LEVEL=debug
//
// # Errors
//
// Failures are reported as [*PathError] wrapping one of the sentinel
// errors, test them with errors.Is or the helpers:
//
//	if vfs.IsNotExist(err) {
//	    // handle missing file
//	}
//
// # Checksums
//
// [Checksum] and [Checksums] hash the remaining content of an open handle
// with md5, sha1, sha256, sha512, crc32 or xxhash.
package vfs
