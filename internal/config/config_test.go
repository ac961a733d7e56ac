// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "" {
		t.Errorf("APIKey: got %q, want empty default", cfg.APIKey)
	}
	if cfg.Endpoint != "" {
		t.Errorf("Endpoint: got %q, want empty default", cfg.Endpoint)
	}
	if cfg.UI.Verbose {
		t.Error("UI.Verbose: got true, want false default")
	}
}

func TestLoad_FromCUEFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
api_key: "tok-abc"
endpoint: "https://wow.curseforge.com"

ui: {
	verbose: true
}
`)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "tok-abc" {
		t.Errorf("APIKey: got %q", cfg.APIKey)
	}
	if cfg.Endpoint != "https://wow.curseforge.com" {
		t.Errorf("Endpoint: got %q", cfg.Endpoint)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose: got false, want true")
	}
}

func TestLoad_InvalidCUESyntax(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `api_key: "unterminated`)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid CUE syntax")
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `api_key: 42`)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for schema violation (api_key must be a string)")
	}
}

func TestLoad_InvalidEndpoint(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `endpoint: "not a url"`)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	_, err := Load()
	if !errors.Is(err, ErrInvalidEndpoint) {
		t.Fatalf("got %v, want ErrInvalidEndpoint", err)
	}
}

func TestLoad_ConfigFilePathOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(path, []byte(`api_key: "from-custom"`), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	SetConfigFilePathOverride(path)
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "from-custom" {
		t.Errorf("APIKey: got %q", cfg.APIKey)
	}
}

func TestLoad_ConfigFilePathOverrideMissing(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "absent.cue"))
	t.Cleanup(Reset)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `api_key: "from-file"`)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	t.Setenv("CURSEUPLOAD_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey: got %q, want env override to win", cfg.APIKey)
	}
}
