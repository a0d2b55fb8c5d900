package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/erdiagram/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.HistorySize != 50 {
		t.Errorf("HistorySize = %d, want 50", cfg.HistorySize)
	}
	if cfg.DefaultEntityName != "New Entity" || cfg.DefaultRelationshipName != "New Relationship" {
		t.Errorf("default names = %q, %q", cfg.DefaultEntityName, cfg.DefaultRelationshipName)
	}
	if cfg.Export.Padding != 150 || cfg.Export.Scale != 1 {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
history_size = 10
default_entity_name = "Entità"
store = "redis://localhost:6379/0"
log_level = "debug"

[export]
scale = 2

[serve]
addr = ":9000"

[cache]
ttl = "1h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistorySize != 10 {
		t.Errorf("HistorySize = %d, want 10", cfg.HistorySize)
	}
	if cfg.DefaultEntityName != "Entità" {
		t.Errorf("DefaultEntityName = %q", cfg.DefaultEntityName)
	}
	if cfg.DefaultRelationshipName != "New Relationship" {
		t.Errorf("unset key should keep its default, got %q", cfg.DefaultRelationshipName)
	}
	if cfg.Export.Scale != 2 || cfg.Export.Padding != 150 {
		t.Errorf("Export = %+v, want scale 2 and default padding", cfg.Export)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q", cfg.Serve.Addr)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if ttl, _ := cfg.CacheTTL(); ttl != time.Hour {
		t.Errorf("CacheTTL() = %v, want 1h", ttl)
	}
	if cfg.StoreLocation() != "redis://localhost:6379/0" {
		t.Errorf("StoreLocation() = %q", cfg.StoreLocation())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `history_size = `},
		{"wrong type", `history_size = "many"`},
		{"unknown key", `colour = "blue"`},
		{"zero history", `history_size = 0`},
		{"negative scale", "[export]\nscale = -1"},
		{"bad level", `log_level = "loud"`},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"bad store", `store = "ftp://x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidConfig && code != errors.ErrCodeInvalidURL {
				t.Errorf("Load() code = %v, want %v", code, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg", AppName, "config.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg, err := Load(writeConfig(t, `save_directory = "~/diagrams"`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(home, "diagrams"); cfg.SaveDirectory != want {
		t.Errorf("SaveDirectory = %q, want %q", cfg.SaveDirectory, want)
	}
}

func TestResolvePath(t *testing.T) {
	cfg := Config{SaveDirectory: "/data"}
	tests := []struct {
		in, want string
	}{
		{"school.json", filepath.Join("/data", "school.json")},
		{"/abs/school.json", "/abs/school.json"},
		{filepath.Join("sub", "school.json"), filepath.Join("sub", "school.json")},
	}
	for _, tt := range tests {
		if got := cfg.ResolvePath(tt.in); got != tt.want {
			t.Errorf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := (Config{}).ResolvePath("x.json"); got != "x.json" {
		t.Errorf("ResolvePath without SaveDirectory = %q", got)
	}
}

func TestStoreLocation(t *testing.T) {
	if got := (Config{}).StoreLocation(); got != "." {
		t.Errorf("StoreLocation() = %q, want .", got)
	}
	if got := (Config{SaveDirectory: "/data"}).StoreLocation(); got != "/data" {
		t.Errorf("StoreLocation() = %q, want /data", got)
	}
}
