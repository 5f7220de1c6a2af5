package vfs

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			want: Config{
				DefaultType:  "native",
				BufferSize:   4096,
				SniffContent: true,
				PollInterval: "2s",
				GzipLevel:    -1,
				LogLevel:     "warn",
				LogFormat:    "text",
			},
		},
		{
			name: "windows style paths",
			envVars: map[string]string{
				"BEAVER_VFS_DELIMITER":      `\`,
				"BEAVER_VFS_ALLOW_ESCAPE":   "false",
				"BEAVER_VFS_CASE_SENSITIVE": "false",
				"BEAVER_VFS_EXTENSIONS":     ".jar=zip,.war=zip",
			},
			want: Config{
				Delimiter:    `\`,
				DefaultType:  "native",
				BufferSize:   4096,
				SniffContent: true,
				Extensions:   ".jar=zip,.war=zip",
				PollInterval: "2s",
				GzipLevel:    -1,
				LogLevel:     "warn",
				LogFormat:    "text",
			},
		},
		{
			name: "memory backend with tuning",
			envVars: map[string]string{
				"BEAVER_VFS_DEFAULT_TYPE":   "memory",
				"BEAVER_VFS_BUFFER_SIZE":    "65536",
				"BEAVER_VFS_SNIFF_CONTENT":  "false",
				"BEAVER_VFS_CASE_SENSITIVE": "true",
				"BEAVER_VFS_GZIP_LEVEL":     "9",
				"BEAVER_VFS_POLL_INTERVAL":  "500ms",
				"BEAVER_VFS_LOG_LEVEL":      "debug",
				"BEAVER_VFS_LOG_FORMAT":     "json",
			},
			want: Config{
				DefaultType:   "memory",
				BufferSize:    65536,
				CaseSensitive: true,
				PollInterval:  "500ms",
				GzipLevel:     9,
				LogLevel:      "debug",
				LogFormat:     "json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := GetConfig()
			if err != nil {
				t.Fatalf("GetConfig() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("GetConfig() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestConfigDelimiterByte(t *testing.T) {
	if got := (&Config{}).DelimiterByte(); got != DefaultDelimiter {
		t.Errorf("DelimiterByte() = %q, want %q", got, DefaultDelimiter)
	}
	if got := (&Config{Delimiter: `\`}).DelimiterByte(); got != '\\' {
		t.Errorf("DelimiterByte() = %q, want '\\\\'", got)
	}
}

func TestConfigNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "error", LogFormat: "json"}
	l := cfg.NewLogger()
	if l.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected warn to be disabled at error level")
	}
	if !l.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected error to be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" INFO ": slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"bogus":  slog.LevelWarn,
	} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelDebug)
	l.LogUnsupported("write", "a.zip/x", TypeZip)
	if !bytes.Contains(buf.Bytes(), []byte("op=write")) || !bytes.Contains(buf.Bytes(), []byte("backend=zip")) {
		t.Errorf("unexpected log output %q", buf.String())
	}

	buf.Reset()
	l.WithPath("logs").Warn("watch error")
	if !bytes.Contains(buf.Bytes(), []byte("path=logs")) {
		t.Errorf("expected path field, got %q", buf.String())
	}

	buf.Reset()
	NoopLogger().LogUnsupported("write", "x", TypeZip)
	if buf.Len() != 0 {
		t.Error("expected no output from noop logger")
	}
}
