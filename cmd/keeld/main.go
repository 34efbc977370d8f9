// keeld is the keel daemon. It parses its command line with the keel option
// grammar, registers itself as the process program info, and runs a heartbeat
// loop until stopped, optionally detached into the background.
package main

import (
	"errors"
	"fmt"
	"os"

	"keel/internal/command"
	"keel/internal/config"
	"keel/internal/lifecycle"
	"keel/internal/logging"
	"keel/internal/proginfo"
)

const synopsis = "[--detach] [--config=PATH] [--work-dir=DIR] [--pid-file=PATH]" +
	" [--log-file=PATH] [--log-mode=truncate|append] [--log-level=LEVEL]"

func main() {
	cmds, err := command.Parse(os.Args, command.SingleCommand)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	info := proginfo.Initialize(cmds, synopsis)

	opts, err := parseOptions(info.Commands()[0])
	if err != nil {
		var uerr *command.UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, err)
			lifecycle.ExitUsage(info)
		}
		fmt.Fprintln(os.Stderr, err)
		lifecycle.Exit(1)
	}

	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		lifecycle.Exit(1)
	}
	applyOverrides(&cfg, opts)

	logMode, err := logging.ParseOpenMode(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		lifecycle.Exit(1)
	}

	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve executable: %v\n", err)
		lifecycle.Exit(1)
	}

	sink := logging.NewSink()
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Sink: sink})

	uninstall := lifecycle.WireSignals(info)
	defer uninstall()

	lifecycle.Start(lifecycle.StartOptions{
		Detach:     cfg.Detach,
		Executable: exe,
		WorkingDir: cfg.WorkingDir,
		PIDFile:    cfg.PIDFile,
		LogFile:    cfg.LogFile,
		LogMode:    logMode,
		Sink:       sink,
		Info:       info,
	}, func() error {
		return serve(info, logger, cfg)
	})

	lifecycle.Exit(0)
}
