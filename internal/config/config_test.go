package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvVariable(t *testing.T) {
	if _, err := GetEnvVariable(""); err == nil {
		t.Fatal("empty name accepted")
	}
	t.Setenv("PARTICLE_TEST_VAR", "  value ")
	v, err := GetEnvVariable("PARTICLE_TEST_VAR")
	if err != nil || v != "value" {
		t.Fatalf("got %q, %v", v, err)
	}
	t.Setenv("PARTICLE_TEST_VAR", "")
	if _, err := GetEnvVariable("PARTICLE_TEST_VAR"); err == nil {
		t.Fatal("empty value accepted")
	}
}

func TestFromEnvOverlays(t *testing.T) {
	t.Setenv(EnvTheme, "Dashboard")
	t.Setenv(EnvCount, "42")
	t.Setenv(EnvActive, "false")
	t.Setenv(EnvBoundary, "bounce")
	t.Setenv(EnvTerminal, "1")
	t.Setenv(EnvSeed, "7")

	s, err := FromEnv(Defaults())
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.Theme != "dashboard" || s.Count != 42 || s.Active || s.Boundary != "bounce" || !s.Terminal || s.Seed != 7 {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.Width != WindowWidth || !s.Globe {
		t.Fatalf("unset variables changed defaults: %+v", s)
	}
}

func TestFromEnvRejectsMalformed(t *testing.T) {
	t.Setenv(EnvCount, "many")
	t.Setenv(EnvDebug, "maybe")

	base := Defaults()
	s, err := FromEnv(base)
	if err == nil {
		t.Fatal("malformed values accepted")
	}
	if s != base {
		t.Fatalf("settings changed on error: %+v", s)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := Load(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("PARTICLE_COUNT=12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvCount, "")
	os.Unsetenv(EnvCount)
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := FromEnv(Defaults())
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.Count != 12 {
		t.Fatalf("count = %d, want 12 from file", s.Count)
	}
}
