package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keel/internal/config"
	"keel/internal/runlog"
)

func TestResolvePIDFilePrecedence(t *testing.T) {
	flag := "/explicit/keeld.pid"
	empty := ""
	ctx := &commandContext{configFlag: &empty, pidFileFlag: &flag}

	cfg := config.Default()
	cfg.PIDFile = "/from/config.pid"
	if got := ctx.resolvePIDFile(cfg); got != "/explicit/keeld.pid" {
		t.Fatalf("flag should win: %q", got)
	}

	ctx.pidFileFlag = &empty
	if got := ctx.resolvePIDFile(cfg); got != "/from/config.pid" {
		t.Fatalf("config should win over defaults: %q", got)
	}

	cfg.PIDFile = ""
	cfg.WorkingDir = "/var/lib/keel"
	if got := ctx.resolvePIDFile(cfg); got != filepath.Join("/var/lib/keel", "keeld.pid") {
		t.Fatalf("unexpected derived pid file: %q", got)
	}
}

func TestProcessAlive(t *testing.T) {
	if !processAlive(os.Getpid()) {
		t.Fatal("current process should be alive")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"State", "PID"},
		[][]string{{"running", "42"}},
	)
	if !strings.Contains(out, "running") || !strings.Contains(out, "42") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}

func TestStatusCommandReportsNotRunning(t *testing.T) {
	dir := t.TempDir()
	root := newRootCommand()
	root.SetArgs([]string{
		"status",
		"--pid-file", filepath.Join(dir, "keeld.pid"),
		"--config", filepath.Join(dir, "absent.toml"),
	})

	var out strings.Builder
	root.SetOut(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out.String(), "not running") {
		t.Fatalf("unexpected status output:\n%s", out.String())
	}
}

func TestRunsCommandListsHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "keeld.db")
	store, err := runlog.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	run, err := store.Begin(context.Background(), 77, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Finish(context.Background(), run.ID, runlog.OutcomeStopped); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "keel.toml")
	if err := os.WriteFile(cfgPath, []byte(fmt.Sprintf("run_db = %q\n", dbPath)), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	root.SetArgs([]string{"runs", "--config", cfgPath})
	var out strings.Builder
	root.SetOut(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "77") || !strings.Contains(rendered, "daemon") {
		t.Fatalf("unexpected runs output:\n%s", rendered)
	}
	if !strings.Contains(rendered, runlog.OutcomeStopped) {
		t.Fatalf("missing outcome in output:\n%s", rendered)
	}
}
