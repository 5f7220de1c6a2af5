package vfs

import (
	"os"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Path delimiter; empty means the OS separator
	Delimiter string `env:"VFS_DELIMITER"`

	// Backend used when a path names no known container (native, memory)
	DefaultType string `env:"VFS_DEFAULT_TYPE,default:native"`

	// I/O buffer size allocated by each open handle
	BufferSize int `env:"VFS_BUFFER_SIZE,default:4096"`

	// Pattern matching
	CaseSensitive bool `env:"VFS_CASE_SENSITIVE,default:false"`
	AllowEscape   bool `env:"VFS_ALLOW_ESCAPE,default:false"`

	// Sniff file headers when the extension names no container
	SniffContent bool `env:"VFS_SNIFF_CONTENT,default:true"`

	// Extra extension mappings, e.g. ".tgz=gzip,.jar=zip"
	Extensions string `env:"VFS_EXTENSIONS"`

	// How often archive watchers check for changes
	PollInterval string `env:"VFS_POLL_INTERVAL,default:2s"`

	// Compression level for gzip writers (-1 = library default)
	GzipLevel int `env:"VFS_GZIP_LEVEL,default:-1"`

	// Logging
	LogLevel  string `env:"VFS_LOG_LEVEL,default:warn"`
	LogFormat string `env:"VFS_LOG_FORMAT,default:text"` // text or json
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DelimiterByte returns the configured delimiter or DefaultDelimiter.
func (c *Config) DelimiterByte() byte {
	if c.Delimiter == "" {
		return DefaultDelimiter
	}
	return c.Delimiter[0]
}

// NewLogger builds the logger described by LogLevel and LogFormat, writing
// to stderr.
func (c *Config) NewLogger() *Logger {
	level := ParseLevel(c.LogLevel)
	if c.LogFormat == "json" {
		return NewJSONLogger(os.Stderr, level)
	}
	return NewTextLogger(os.Stderr, level)
}
