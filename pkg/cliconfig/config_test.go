package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{
			name:    "valid defaults",
			config:  *NewDefault(),
			wantErr: "",
		},
		{
			name: "valid custom values",
			config: CLIConfig{
				Port:          9000,
				ReadTimeout:   60,
				WriteTimeout:  60,
				SessionCookie: "sid",
				SessionTTL:    600,
				LogLevel:      "DEBUG",
				LogFormat:     "json",
			},
			wantErr: "",
		},
		{
			name:    "port too high",
			config:  CLIConfig{Port: 70000},
			wantErr: "port 70000 is out of range",
		},
		{
			name:    "port negative",
			config:  CLIConfig{Port: -1},
			wantErr: "port -1 is out of range",
		},
		{
			name:    "read timeout too high",
			config:  CLIConfig{Port: 8080, ReadTimeout: 9999},
			wantErr: "readTimeout 9999 is out of range",
		},
		{
			name:    "write timeout negative",
			config:  CLIConfig{Port: 8080, WriteTimeout: -1},
			wantErr: "writeTimeout -1 is out of range",
		},
		{
			name:    "session ttl too long",
			config:  CLIConfig{SessionTTL: 700000},
			wantErr: "sessionTTL 700000 is out of range",
		},
		{
			name:    "sweep interval negative",
			config:  CLIConfig{SweepInterval: -3},
			wantErr: "sweepInterval -3 is out of range",
		},
		{
			name:    "cookie name with space",
			config:  CLIConfig{SessionCookie: "my session"},
			wantErr: `sessionCookie "my session" is not a valid cookie name`,
		},
		{
			name:    "unknown log level",
			config:  CLIConfig{LogLevel: "loud"},
			wantErr: `logLevel "loud"`,
		},
		{
			name:    "unknown log format",
			config:  CLIConfig{LogFormat: "xml"},
			wantErr: `logFormat "xml"`,
		},
		{
			name:    "zero values allowed",
			config:  CLIConfig{},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
			}
		})
	}
}

func TestCLIConfig_Validate_ReportsAll(t *testing.T) {
	cfg := CLIConfig{Port: -1, SessionTTL: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"port -1", "sessionTTL -1"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestMergeConfig_BasicFields(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{
			Port:          9000,
			SessionCookie: "sid",
			SetFields:     map[string]bool{"port": true, "sessionCookie": true},
		}

		MergeConfig(target, source, SourceLocal)

		if target.Port != 9000 {
			t.Errorf("expected port 9000, got %d", target.Port)
		}
		if target.SessionCookie != "sid" {
			t.Errorf("expected cookie sid, got %q", target.SessionCookie)
		}
		if target.Sources["port"] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources["port"])
		}
		if target.Sources["sessionTTL"] != SourceDefault {
			t.Errorf("expected sessionTTL source 'default', got %q", target.Sources["sessionTTL"])
		}
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()

		MergeConfig(target, &CLIConfig{}, SourceLocal)

		if target.Port != DefaultPort {
			t.Errorf("expected default port %d, got %d", DefaultPort, target.Port)
		}
		if target.SessionTTL != DefaultSessionTTL {
			t.Errorf("expected default ttl %d, got %d", DefaultSessionTTL, target.SessionTTL)
		}
	})

	t.Run("handles boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()

		source := &CLIConfig{
			Metrics:   false,
			SetFields: map[string]bool{"metrics": true},
		}

		MergeConfig(target, source, SourceLocal)

		if target.Metrics {
			t.Error("expected metrics to be false after merge")
		}
		if target.Sources["metrics"] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources["metrics"])
		}
	})

	t.Run("does not merge boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()

		MergeConfig(target, &CLIConfig{Metrics: false}, SourceLocal)

		if !target.Metrics {
			t.Error("expected metrics to remain true without SetFields")
		}
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		originalPort := target.Port

		MergeConfig(target, nil, SourceLocal)

		if target.Port != originalPort {
			t.Errorf("expected port unchanged, got %d", target.Port)
		}
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads keys and records set fields", func(t *testing.T) {
		path := writeFile(t, dir, "ok.yaml", "port: 9090\nsessionTTL: 120\ncookieSecure: false\nlogFormat: json\n")

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != 9090 || cfg.SessionTTL != 120 || cfg.LogFormat != "json" {
			t.Errorf("unexpected values: %+v", cfg)
		}
		if !cfg.SetFields["cookieSecure"] {
			t.Error("expected cookieSecure in SetFields")
		}
		if cfg.SetFields["metrics"] {
			t.Error("metrics was not in the file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, dir, "empty.yaml", "")

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != 0 {
			t.Errorf("expected zero port, got %d", cfg.Port)
		}
	})

	t.Run("unknown key has position", func(t *testing.T) {
		path := writeFile(t, dir, "unknown.yaml", "port: 9090\nadminPort: 4290\n")

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if cfgErr.Line != 2 || cfgErr.Column != 1 {
			t.Errorf("expected line 2 column 1, got %d:%d", cfgErr.Line, cfgErr.Column)
		}
		if !strings.Contains(err.Error(), "(line 2, column 1): unknown key adminPort") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "port: lots\n")

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if cfgErr.Path != path {
			t.Errorf("expected path %q, got %q", path, cfgErr.Path)
		}
	})

	t.Run("top level list", func(t *testing.T) {
		path := writeFile(t, dir, "list.yaml", "- port\n")

		_, err := LoadConfigFile(path)
		if err == nil || !strings.Contains(err.Error(), "top level must be a mapping") {
			t.Errorf("expected mapping error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvPort, "7070")
	t.Setenv(EnvSessionCookie, "trace")
	t.Setenv(EnvMetrics, "0")
	t.Setenv(EnvReadTimeout, "soon")

	cfg := NewDefault()
	LoadEnvConfig(cfg)

	if cfg.Port != 7070 {
		t.Errorf("expected port 7070, got %d", cfg.Port)
	}
	if cfg.SessionCookie != "trace" {
		t.Errorf("expected cookie trace, got %q", cfg.SessionCookie)
	}
	if cfg.Metrics {
		t.Error("expected metrics disabled")
	}
	if cfg.ReadTimeout != DefaultReadTimeout {
		t.Errorf("unparseable timeout should be ignored, got %d", cfg.ReadTimeout)
	}
	if cfg.Sources["port"] != SourceEnv || cfg.Sources["readTimeout"] != SourceDefault {
		t.Errorf("unexpected sources: %v", cfg.Sources)
	}
}

func TestLoadAll_LocalOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Setenv(EnvPort, "")

	writeFile(t, dir, ".sessiontracerc.yaml", "port: 9191\nverbose: true\n")

	cfg, err := LoadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9191 || cfg.Sources["port"] != SourceLocal {
		t.Errorf("expected local port 9191, got %d from %s", cfg.Port, cfg.Sources["port"])
	}
	if !cfg.Verbose {
		t.Error("expected verbose from local file")
	}

	t.Setenv(EnvPort, "9292")
	cfg, err = LoadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9292 || cfg.Sources["port"] != SourceEnv {
		t.Errorf("expected env port 9292, got %d from %s", cfg.Port, cfg.Sources["port"])
	}
}

func TestLoadAll_ExplicitZeroInts(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Setenv(EnvPort, "")
	t.Setenv(EnvSessionTTL, "")
	t.Setenv(EnvSweepInterval, "")

	writeFile(t, dir, ".sessiontracerc.yaml", "port: 0\nsessionTTL: 0\nsweepInterval: 0\n")

	cfg, err := LoadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for key, got := range map[string]int{"port": cfg.Port, "sessionTTL": cfg.SessionTTL, "sweepInterval": cfg.SweepInterval} {
		if got != 0 {
			t.Errorf("%s = %d, want 0", key, got)
		}
		if cfg.Sources[key] != SourceLocal {
			t.Errorf("%s source = %q, want %q", key, cfg.Sources[key], SourceLocal)
		}
	}
	// Absent keys keep their defaults.
	if cfg.ReadTimeout != DefaultReadTimeout || cfg.Sources["readTimeout"] != SourceDefault {
		t.Errorf("readTimeout = %d from %s, want default", cfg.ReadTimeout, cfg.Sources["readTimeout"])
	}
}

func TestLoadAll_MalformedLocal(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	writeFile(t, dir, ".sessiontracerc.yml", "port: [\n")

	if _, err := LoadAll(); err == nil {
		t.Fatal("expected error for malformed local config")
	}
}

func TestCLIConfig_Value(t *testing.T) {
	cfg := NewDefault()
	for _, key := range Keys {
		if _, ok := cfg.Sources[key]; !ok {
			t.Errorf("default sources missing %q", key)
		}
	}
	if got := cfg.Value("port"); got != "8080" {
		t.Errorf("expected 8080, got %q", got)
	}
	if got := cfg.Value("metrics"); got != "true" {
		t.Errorf("expected true, got %q", got)
	}
	if got := cfg.Value("nope"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestConfigError_Error(t *testing.T) {
	e := &ConfigError{Path: "a.yaml", Message: "bad"}
	if e.Error() != "a.yaml: bad" {
		t.Errorf("unexpected %q", e.Error())
	}
	e.Line, e.Column = 3, 7
	if e.Error() != "a.yaml (line 3, column 7): bad" {
		t.Errorf("unexpected %q", e.Error())
	}
}

// chdirForTest changes the working directory to dir for the duration of the
// test and restores the previous directory on cleanup.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
