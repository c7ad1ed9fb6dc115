package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	velderrors "github.com/veld-dev/veld/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	var ve *velderrors.VeldError
	if !stderrors.As(err, &ve) || ve.Code != "E060" {
		t.Errorf("expected E060 for missing config, got %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{not json")

	_, err := Load(dir)
	var ve *velderrors.VeldError
	if !stderrors.As(err, &ve) || ve.Code != "E061" {
		t.Errorf("expected E061 for bad JSON, got %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "demo"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("expected name demo, got %q", cfg.Name)
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("expected default dev port, got %d", cfg.Dev.Port)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("expected default host, got %q", cfg.Dev.Host)
	}
	if cfg.Build.Output != DefaultOutput {
		t.Errorf("expected default output, got %q", cfg.Build.Output)
	}
	if cfg.Paths.App != "app" || cfg.Paths.Public != "public" {
		t.Errorf("expected default paths, got %+v", cfg.Paths)
	}
}

func TestPortFallsThroughToDev(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"port": 8080}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dev.Port != 8080 {
		t.Errorf("top-level port should seed dev.port, got %d", cfg.Dev.Port)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"dev": {"port": 99999}}`)

	if _, err := Load(dir); err == nil {
		t.Error("out-of-range port should fail validation")
	}
}

func TestValidateRejectsPrefixWithoutBucket(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"deploy": {"prefix": "site/"}}`)

	if _, err := Load(dir); err == nil {
		t.Error("deploy.prefix without bucket should fail validation")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "roundtrip"
	cfg.Deploy = DeployConfig{Bucket: "b", Region: "eu-west-1"}

	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Name != "roundtrip" {
		t.Errorf("expected roundtrip, got %q", loaded.Name)
	}
	if loaded.Deploy.Bucket != "b" {
		t.Errorf("deploy config lost in round trip: %+v", loaded.Deploy)
	}
	if loaded.Dir() != dir {
		t.Errorf("expected dir %q, got %q", dir, loaded.Dir())
	}
}

func TestSaveWithoutPathFails(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save without a loaded path should fail")
	}
}
