package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
backend:
  base_url: "http://inference.local:9000/"
ui:
  default_top_k: 8
stub:
  port: 9100
  catalog_path: "./catalog.yaml"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://inference.local:9000/" {
		t.Errorf("base_url: got %s", cfg.Backend.BaseURL)
	}
	if cfg.UI.DefaultTopK != 8 {
		t.Errorf("default_top_k: got %d", cfg.UI.DefaultTopK)
	}
	if cfg.Stub.Port != 9100 || cfg.Stub.Host != "127.0.0.1" {
		t.Errorf("unexpected stub config: %+v", cfg.Stub)
	}
	if want := filepath.Join(dir, "catalog.yaml"); cfg.Stub.CatalogPath != want {
		t.Errorf("catalog_path = %s, want %s", cfg.Stub.CatalogPath, want)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [not: a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOrDefault_missingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.UI.DefaultTopK != 5 || cfg.UI.DefaultText == "" || cfg.UI.DefaultQuery == "" {
		t.Errorf("defaults not applied: %+v", cfg.UI)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{UI: UIConfig{DefaultTopK: 99}}
	ApplyDefaults(cfg)
	if cfg.UI.DefaultTopK != 30 {
		t.Errorf("default_top_k should clamp to 30, got %d", cfg.UI.DefaultTopK)
	}
	if cfg.UI.BarWidth != 24 {
		t.Errorf("bar width: got %d", cfg.UI.BarWidth)
	}
	if cfg.Stub.Port != 8000 {
		t.Errorf("stub port: got %d", cfg.Stub.Port)
	}
}

func TestResolveBaseURL(t *testing.T) {
	// Run from an empty directory so no stray .env is picked up.
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := &Config{Backend: BackendConfig{BaseURL: "http://from-config:1/"}}

	t.Setenv(BackendURLEnv, "")
	if got := cfg.ResolveBaseURL("http://from-flag:2/"); got != "http://from-flag:2" {
		t.Errorf("flag: got %s", got)
	}
	if got := cfg.ResolveBaseURL(""); got != "http://from-config:1" {
		t.Errorf("config: got %s", got)
	}

	t.Setenv(BackendURLEnv, "http://from-env:3")
	if got := cfg.ResolveBaseURL(""); got != "http://from-env:3" {
		t.Errorf("env: got %s", got)
	}

	t.Setenv(BackendURLEnv, "")
	if got := (&Config{}).ResolveBaseURL("  "); got != DefaultBaseURL {
		t.Errorf("fallback: got %s", got)
	}
}

func TestResolveBaseURL_dotEnv(t *testing.T) {
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BACKEND_URL=http://dotenv:4\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(BackendURLEnv, "")
	if err := os.Unsetenv(BackendURLEnv); err != nil {
		t.Fatal(err)
	}

	if got := (&Config{}).ResolveBaseURL(""); got != "http://dotenv:4" {
		t.Errorf("dotenv: got %s", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{Backend: BackendConfig{BaseURL: "http://saved:8000"}, Stub: StubConfig{Port: 9090}}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Stub.Port != 9090 || loaded.Backend.BaseURL != "http://saved:8000" {
		t.Errorf("loaded: %+v", loaded)
	}
}
