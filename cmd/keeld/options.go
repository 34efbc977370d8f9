package main

import (
	"fmt"

	"keel/internal/command"
	"keel/internal/config"
)

// options are the command-line overrides keeld accepts on top of the config
// file.
type options struct {
	detach     bool
	configPath string
	workDir    string
	pidFile    string
	logFile    string
	logMode    string
	logLevel   string
}

func parseOptions(cmd command.Command) (options, error) {
	var o options

	if params := cmd.Parameters(); len(params) > 0 {
		return o, fmt.Errorf("unexpected parameter %q", params[0])
	}

	refs, err := cmd.StrictOptions(
		"detach", "config", "work-dir", "pid-file", "log-file", "log-mode", "log-level",
	)
	if err != nil {
		return o, err
	}
	detach, cfgPath, workDir, pidFile, logFile, logMode, logLevel :=
		refs[0], refs[1], refs[2], refs[3], refs[4], refs[5], refs[6]

	if o.detach, err = detach.Flag(); err != nil {
		return o, err
	}
	for _, binding := range []struct {
		ref command.OptRef
		dst *string
	}{
		{cfgPath, &o.configPath},
		{workDir, &o.workDir},
		{pidFile, &o.pidFile},
		{logFile, &o.logFile},
		{logMode, &o.logMode},
		{logLevel, &o.logLevel},
	} {
		if !binding.ref.Valid() {
			continue
		}
		if *binding.dst, err = binding.ref.RequiredNonEmptyValue(); err != nil {
			return o, err
		}
	}
	return o, nil
}

// applyOverrides layers command-line options over file configuration.
func applyOverrides(cfg *config.Config, o options) {
	if o.detach {
		cfg.Detach = true
	}
	if o.workDir != "" {
		cfg.WorkingDir = o.workDir
	}
	if o.pidFile != "" {
		cfg.PIDFile = o.pidFile
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if o.logMode != "" {
		cfg.LogMode = o.logMode
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
}
