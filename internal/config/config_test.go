package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/horasal/frombase"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frombase.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
plugin:
  encoding: msgpack
  workers: 8
default_table: "@base58"
tables:
  nubase21: "123456789achlmnACHLMN"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Plugin.Encoding != "msgpack" || cfg.Plugin.Workers != 8 {
		t.Errorf("Plugin = %+v", cfg.Plugin)
	}
	if cfg.DefaultTable != "@base58" {
		t.Errorf("DefaultTable = %q", cfg.DefaultTable)
	}
	if got := cfg.Tables["nubase21"]; got != "123456789achlmnACHLMN" {
		t.Errorf("Tables[nubase21] = %q", got)
	}

	if err := cfg.RegisterTables(); err != nil {
		t.Fatalf("RegisterTables() error = %v", err)
	}
	chars, ok := frombase.LookupTable("nubase21")
	if !ok || chars != "123456789achlmnACHLMN" {
		t.Errorf("LookupTable(nubase21) = %q, %v", chars, ok)
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvPrefix+"_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := Default()
	if cfg.Log != def.Log || cfg.Plugin != def.Plugin {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "plugin:\n  encoding: json\n")
	t.Setenv("FROMBASE_PLUGIN_ENCODING", "msgpack")
	t.Setenv("FROMBASE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Plugin.Encoding != "msgpack" {
		t.Errorf("Plugin.Encoding = %q, want msgpack", cfg.Plugin.Encoding)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad encoding", "plugin:\n  encoding: xml\n"},
		{"bad workers", "plugin:\n  workers: 0\n"},
		{"bad log format", "log:\n  format: logfmt\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of an explicit missing file should fail")
	}
}
