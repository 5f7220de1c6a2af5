package vfs

// ScanOption configures a scanner.
type ScanOption func(*ScanOptions)

// ScanOptions contains the settings shared by all scanners
type ScanOptions struct {
	// Recursive descends into subdirectories
	Recursive bool

	// CaseSensitive matches the pattern exactly instead of case-folded
	CaseSensitive bool

	// AllowEscape lets a backslash quote wildcard characters in the pattern.
	// Leave it off when the path delimiter is a backslash.
	AllowEscape bool

	// Visitor is consulted for every directory and matching file
	Visitor Visitor

	// Exclude holds glob patterns (github.com/gobwas/glob syntax) of paths
	// that are never reported nor descended into
	Exclude []string

	// Logger receives scan diagnostics
	Logger *Logger
}

// Visitor decides how a scan proceeds at path. For directories Skip prunes
// the subtree, for files it leaves the file out. Abort stops the scan.
type Visitor func(path string, isDir bool) ScanState

// WithRecursive sets whether subdirectories are scanned.
func WithRecursive(recursive bool) ScanOption {
	return func(o *ScanOptions) {
		o.Recursive = recursive
	}
}

// WithCaseSensitive sets whether the pattern is matched case-sensitively.
func WithCaseSensitive(caseSensitive bool) ScanOption {
	return func(o *ScanOptions) {
		o.CaseSensitive = caseSensitive
	}
}

// WithAllowEscape sets whether a backslash escapes wildcard characters.
func WithAllowEscape(allow bool) ScanOption {
	return func(o *ScanOptions) {
		o.AllowEscape = allow
	}
}

// WithVisitor installs a visitor.
func WithVisitor(v Visitor) ScanOption {
	return func(o *ScanOptions) {
		o.Visitor = v
	}
}

// WithExclude adds exclusion globs.
func WithExclude(patterns ...string) ScanOption {
	return func(o *ScanOptions) {
		o.Exclude = append(o.Exclude, patterns...)
	}
}

// WithScanLogger sets the logger for scan diagnostics.
func WithScanLogger(l *Logger) ScanOption {
	return func(o *ScanOptions) {
		o.Logger = l
	}
}
