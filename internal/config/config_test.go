package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"keel/internal/config"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.LogMode != "truncate" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HeartbeatSeconds != 30 {
		t.Fatalf("unexpected heartbeat default: %d", cfg.HeartbeatSeconds)
	}
	if cfg.Detach {
		t.Fatal("expected detach disabled by default")
	}
}

func TestLoadReadsFileAndExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "keel.toml")
	contents := `
detach = true
working_dir = "~/daemon"
pid_file = "~/run/keeld.pid"
log_mode = "append"
heartbeat_seconds = 5
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != path || !exists {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if !cfg.Detach {
		t.Fatal("expected detach enabled")
	}
	if cfg.WorkingDir != filepath.Join(home, "daemon") {
		t.Fatalf("unexpected working dir: %q", cfg.WorkingDir)
	}
	if cfg.PIDFile != filepath.Join(home, "run", "keeld.pid") {
		t.Fatalf("unexpected pid file: %q", cfg.PIDFile)
	}
	if cfg.LogMode != "append" || cfg.HeartbeatSeconds != 5 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	badMode := filepath.Join(dir, "mode.toml")
	if err := os.WriteFile(badMode, []byte(`log_mode = "rotate"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(badMode); err == nil {
		t.Fatal("expected error for invalid log_mode")
	}

	badHeartbeat := filepath.Join(dir, "beat.toml")
	if err := os.WriteFile(badHeartbeat, []byte(`heartbeat_seconds = 0`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(badHeartbeat); err == nil {
		t.Fatal("expected error for non-positive heartbeat")
	}

	badTOML := filepath.Join(dir, "syntax.toml")
	if err := os.WriteFile(badTOML, []byte(`detach = `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(badTOML); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestSampleParsesAsValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := os.WriteFile(path, []byte(config.Sample()), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.HeartbeatSeconds != 30 {
		t.Fatalf("unexpected heartbeat: %d", cfg.HeartbeatSeconds)
	}
}
