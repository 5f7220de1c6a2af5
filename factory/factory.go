// Package factory picks the backend for a path and builds handles and
// scanners for it.
//
// A path may run through a container, as in "logs/2024.zip/day1/app.log".
// The factory finds the earliest container extension in the path, splits
// the path into container and member, and hands both to the matching
// backend. Paths without a container extension go to the default backend.
package factory

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/driver/memory"
	"github.com/gobeaver/vfs/driver/native"
	"github.com/gobeaver/vfs/driver/stream"
	"github.com/gobeaver/vfs/driver/zip"
)

// Mapping ties a container extension to a backend and the mode handles of
// that backend start with.
type Mapping struct {
	Ext  string
	Type vfs.Type
	Mode vfs.OpenMode
}

// DefaultMappings is the extension table a new Factory starts with.
var DefaultMappings = []Mapping{
	{Ext: ".GZ", Type: vfs.TypeGzip, Mode: vfs.DefaultMode},
	{Ext: ".TGZ", Type: vfs.TypeGzip, Mode: vfs.DefaultMode},
	{Ext: ".ZIP", Type: vfs.TypeZip, Mode: vfs.DefaultMode},
	{Ext: ".LZ4", Type: vfs.TypeLZ4, Mode: vfs.DefaultMode},
	{Ext: ".ZST", Type: vfs.TypeZstd, Mode: vfs.DefaultMode},
	{Ext: ".ZSTD", Type: vfs.TypeZstd, Mode: vfs.DefaultMode},
}

// Constructor creates a closed handle of one backend.
type Constructor func(name vfs.Filename) vfs.File

// Container is the result of container detection.
type Container struct {
	// Found is false when no known extension occurs in the path.
	Found bool
	Type  vfs.Type
	Mode  vfs.OpenMode
	// Path is the path up to and including the extension, or the whole
	// path when nothing was found.
	Path string
	// Member is what follows the container, without the separator.
	Member string
	// Nested reports whether anything followed the container.
	Nested bool
}

// Factory resolves paths to backends. It is safe for concurrent use; the
// handles it returns are not.
type Factory struct {
	mu       sync.RWMutex
	table    []Mapping
	backends map[vfs.Type]Constructor

	delim         byte
	defaultType   vfs.Type
	bufferSize    int
	sniff         bool
	caseSensitive bool
	allowEscape   bool
	gzipLevel     int
	pollInterval  time.Duration
	readOnly      bool
	logger        *vfs.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithDelimiter sets the path delimiter.
func WithDelimiter(d byte) Option {
	return func(f *Factory) {
		f.delim = d
	}
}

// WithDefaultType sets the backend for paths naming no container.
func WithDefaultType(t vfs.Type) Option {
	return func(f *Factory) {
		f.defaultType = t
	}
}

// WithBufferSize sets the buffer size of created handles.
func WithBufferSize(n int) Option {
	return func(f *Factory) {
		f.bufferSize = n
	}
}

// WithContentSniffing enables header detection for paths whose extension
// names no container.
func WithContentSniffing(enabled bool) Option {
	return func(f *Factory) {
		f.sniff = enabled
	}
}

// WithCaseSensitive makes scanners match patterns case-sensitively.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(f *Factory) {
		f.caseSensitive = caseSensitive
	}
}

// WithAllowEscape lets scanner patterns escape wildcards with a backslash.
func WithAllowEscape(allow bool) Option {
	return func(f *Factory) {
		f.allowEscape = allow
	}
}

// WithGzipLevel sets the compression level of gzip writers.
func WithGzipLevel(level int) Option {
	return func(f *Factory) {
		f.gzipLevel = level
	}
}

// WithPollInterval sets how often archive watchers check for changes.
func WithPollInterval(d time.Duration) Option {
	return func(f *Factory) {
		f.pollInterval = d
	}
}

// WithReadOnly makes every created handle refuse writes.
func WithReadOnly(readOnly bool) Option {
	return func(f *Factory) {
		f.readOnly = readOnly
	}
}

// WithLogger sets the logger handed to handles and scanners.
func WithLogger(l *vfs.Logger) Option {
	return func(f *Factory) {
		f.logger = l
	}
}

// New creates a Factory with the default extension table and backends.
func New(opts ...Option) *Factory {
	f := &Factory{
		table:        append([]Mapping(nil), DefaultMappings...),
		delim:        vfs.DefaultDelimiter,
		defaultType:  vfs.TypeNative,
		bufferSize:   vfs.DefaultBufferSize,
		sniff:        true,
		gzipLevel:    -1,
		pollInterval: 2 * time.Second,
		logger:       vfs.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.backends = map[vfs.Type]Constructor{
		vfs.TypeNative: func(name vfs.Filename) vfs.File { return native.New(name) },
		vfs.TypeMemory: func(name vfs.Filename) vfs.File { return memory.New(name) },
		vfs.TypeZip: func(name vfs.Filename) vfs.File {
			return zip.NewWithExtensions(name, f.extensionsOf(vfs.TypeZip))
		},
	}
	for _, t := range []vfs.Type{vfs.TypeGzip, vfs.TypeZstd, vfs.TypeLZ4} {
		codec := stream.CodecFor(t, f.gzipLevel)
		f.backends[t] = func(name vfs.Filename) vfs.File { return stream.New(name, codec) }
	}
	return f
}

// NewFromConfig creates a Factory from environment configuration.
func NewFromConfig(cfg *vfs.Config) (*Factory, error) {
	defaultType, err := vfs.ParseType(cfg.DefaultType)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithDelimiter(cfg.DelimiterByte()),
		WithDefaultType(defaultType),
		WithBufferSize(cfg.BufferSize),
		WithContentSniffing(cfg.SniffContent),
		WithCaseSensitive(cfg.CaseSensitive),
		WithAllowEscape(cfg.AllowEscape),
		WithGzipLevel(cfg.GzipLevel),
		WithLogger(cfg.NewLogger()),
	}
	if cfg.PollInterval != "" {
		d, err := time.ParseDuration(cfg.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll interval %q: %w", cfg.PollInterval, err)
		}
		opts = append(opts, WithPollInterval(d))
	}
	f := New(opts...)

	if cfg.Extensions == "" {
		return f, nil
	}
	for _, pair := range strings.Split(cfg.Extensions, ",") {
		ext, name, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || ext == "" {
			return nil, fmt.Errorf("invalid extension mapping %q", pair)
		}
		t, err := vfs.ParseType(name)
		if err != nil {
			return nil, err
		}
		f.Register(ext, t, vfs.DefaultMode)
	}
	return f, nil
}

// Register adds or replaces a container extension. New extensions go to
// the end of the table.
func (f *Factory) Register(ext string, t vfs.Type, mode vfs.OpenMode) {
	ext = strings.ToUpper(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.table {
		if f.table[i].Ext == ext {
			f.table[i] = Mapping{Ext: ext, Type: t, Mode: mode}
			return
		}
	}
	f.table = append(f.table, Mapping{Ext: ext, Type: t, Mode: mode})
}

// RegisterBackend installs the constructor for a backend type.
func (f *Factory) RegisterBackend(t vfs.Type, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.backends[t] = c
}

// Mappings returns a copy of the extension table.
func (f *Factory) Mappings() []Mapping {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Mapping(nil), f.table...)
}

// extensionsOf lists the registered extensions of backend t in table order.
func (f *Factory) extensionsOf(t vfs.Type) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var exts []string
	for _, m := range f.table {
		if m.Type == t {
			exts = append(exts, m.Ext)
		}
	}
	return exts
}

// Delimiter returns the path delimiter of created filenames.
func (f *Factory) Delimiter() byte { return f.delim }

// Filename wraps path with the factory's delimiter.
func (f *Factory) Filename(path string) vfs.Filename {
	return vfs.NewFilenameDelim(path, "", f.delim)
}

// DetectContainer finds the known extension that occurs first in path.
// Only whole extensions count, so "backup.gzip/notes.txt" has no container.
// When two extensions start at the same position the longer one wins,
// then the one registered first.
func (f *Factory) DetectContainer(path string) Container {
	f.mu.RLock()
	best := -1
	var match Mapping
	for _, m := range f.table {
		i := vfs.IndexExtension(path, m.Ext, f.delim)
		if i < 0 {
			continue
		}
		if best < 0 || i < best || (i == best && len(m.Ext) > len(match.Ext)) {
			best = i
			match = m
		}
	}
	f.mu.RUnlock()

	if best < 0 {
		return Container{Type: vfs.TypeUnknown, Path: path}
	}

	end := best + len(match.Ext)
	c := Container{
		Found: true,
		Type:  match.Type,
		Mode:  match.Mode,
		Path:  path[:end],
	}
	if end < len(path) {
		c.Nested = true
		c.Member = path[end+1:]
	}
	return c
}

// ResolveType maps name to a backend. A container in the middle of the
// path yields base path = container and file name = member; a container at
// the end yields the whole path, normalized. Without a container the name
// is returned unchanged with vfs.TypeUnknown.
func (f *Factory) ResolveType(name vfs.Filename) (vfs.Filename, vfs.Type) {
	resolved, c := f.resolve(name)
	return resolved, c.Type
}

func (f *Factory) resolve(name vfs.Filename) (vfs.Filename, Container) {
	c := f.DetectContainer(name.OpenPath())
	if !c.Found {
		return name, c
	}
	delim := name.Delimiter()
	if c.Nested {
		return vfs.NewFilenameDelim(c.Member, c.Path, delim), c
	}
	return vfs.ParseFilenameDelim(c.Path, delim), c
}

// Create builds a closed handle of backend t for name without any
// detection.
func (f *Factory) Create(name vfs.Filename, t vfs.Type) (vfs.File, error) {
	f.mu.RLock()
	ctor, ok := f.backends[t]
	f.mu.RUnlock()
	if !ok {
		return nil, vfs.WrapPathErr("create", name.OpenPath(), fmt.Errorf("%w: %s", vfs.ErrUnknownType, t))
	}

	file := ctor(name)
	file.SetBufferSize(f.bufferSize)
	if l, ok := file.(interface{ SetLogger(*vfs.Logger) }); ok {
		l.SetLogger(f.logger)
	}
	if f.readOnly {
		file = vfs.ReadOnly(file)
	}
	return file, nil
}

// Handle returns a closed handle for path. With t set to vfs.TypeUnknown
// the backend is detected from the path, then from the file header when
// sniffing is enabled, and finally def is used (the factory default when
// def is unknown as well). An empty path yields vfs.ErrInvalidName.
func (f *Factory) Handle(path string, t, def vfs.Type) (vfs.File, error) {
	if path == "" {
		return nil, vfs.WrapPathErr("open", path, vfs.ErrInvalidName)
	}
	name := f.Filename(path)
	mode := vfs.DefaultMode

	if t == vfs.TypeUnknown {
		resolved, c := f.resolve(name)
		switch {
		case c.Found:
			name, t, mode = resolved, c.Type, c.Mode
		case f.sniff:
			t = f.Sniff(path)
		}
		if t == vfs.TypeUnknown {
			t = def
		}
		if t == vfs.TypeUnknown {
			t = f.defaultType
		}
	}

	file, err := f.Create(name, t)
	if err != nil {
		return nil, err
	}
	file.SetMode(mode)
	f.logger.LogResolve(path, t, name.BasePath(), name.FileName())
	return file, nil
}

// Open returns a handle for path opened with mode. Nothing is returned
// when opening fails.
func (f *Factory) Open(path string, mode vfs.OpenMode, t vfs.Type) (vfs.File, error) {
	file, err := f.Handle(path, t, vfs.TypeUnknown)
	if err != nil {
		return nil, err
	}
	if err := file.OpenWith(mode); err != nil {
		return nil, err
	}
	return file, nil
}

// Sniff reads the first bytes of the file at path and identifies its
// container format. Missing or unreadable files are vfs.TypeUnknown.
func (f *Factory) Sniff(path string) vfs.Type {
	osf, err := os.Open(path)
	if err != nil {
		return vfs.TypeUnknown
	}
	defer osf.Close()

	header := make([]byte, vfs.SniffLen)
	n, err := io.ReadFull(osf, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return vfs.TypeUnknown
	}
	return vfs.SniffType(header[:n])
}

// Scanner returns the scanner for path, whose file name is the pattern.
// Plain directories get a filesystem scanner, directories inside a zip
// archive (or a zip archive itself) an archive scanner. Other containers
// cannot be scanned and yield vfs.ErrNoScanner.
func (f *Factory) Scanner(path string, recursive bool, opts ...vfs.ScanOption) (vfs.Scanner, error) {
	if path == "" {
		return nil, vfs.WrapPathErr("scan", path, vfs.ErrInvalidName)
	}
	root := vfs.ParseFilenameDelim(path, f.delim)
	opts = append([]vfs.ScanOption{
		vfs.WithRecursive(recursive),
		vfs.WithCaseSensitive(f.caseSensitive),
		vfs.WithAllowEscape(f.allowEscape),
		vfs.WithScanLogger(f.logger),
	}, opts...)

	c := f.DetectContainer(root.BasePath())
	if !c.Found {
		whole := f.DetectContainer(root.OpenPath())
		if !whole.Found || whole.Nested || root.HasWildcard(false) {
			return native.NewScanner(root, opts...)
		}
		c = whole
	}

	switch c.Type {
	case vfs.TypeZip:
		member := c.Member
		if c.Nested {
			member += root.FileName()
		}
		root := vfs.NewFilenameDelim(member, c.Path, f.delim)
		return zip.NewScannerWithExtensions(root, f.extensionsOf(vfs.TypeZip), opts...)
	default:
		return nil, vfs.WrapPathErr("scan", path, fmt.Errorf("%w: %s", vfs.ErrNoScanner, c.Type))
	}
}

// Watch returns a token fired by the first change below the scan root of
// path. Directories are watched through filesystem events, zip archives by
// polling the archive file.
func (f *Factory) Watch(ctx context.Context, path string, recursive bool, opts ...vfs.ScanOption) (vfs.ChangeToken, error) {
	s, err := f.Scanner(path, recursive, opts...)
	if err != nil {
		return nil, err
	}
	switch s := s.(type) {
	case *native.Scanner:
		return s.ChangeToken(ctx)
	case *zip.Scanner:
		return s.ChangeToken(ctx, f.pollInterval)
	default:
		return nil, vfs.WrapPathErr("watch", path, vfs.ErrNotSupported)
	}
}
