package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"keel/internal/config"
)

// commandContext carries the flag values shared across subcommands.
type commandContext struct {
	configFlag  *string
	pidFileFlag *string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var pidFileFlag string

	ctx := &commandContext{configFlag: &configFlag, pidFileFlag: &pidFileFlag}

	rootCmd := &cobra.Command{
		Use:           "keel",
		Short:         "Control a running keeld daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&pidFileFlag, "pid-file", "", "Path to the keeld PID file")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newStopCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))

	return rootCmd
}

func (c *commandContext) loadConfig() (config.Config, error) {
	cfg, _, _, err := config.Load(strings.TrimSpace(*c.configFlag))
	return cfg, err
}

// resolvePIDFile picks the PID file location: the explicit flag, then the
// config file, then keeld's own default next to the binaries.
func (c *commandContext) resolvePIDFile(cfg config.Config) string {
	if path := strings.TrimSpace(*c.pidFileFlag); path != "" {
		return path
	}
	if cfg.PIDFile != "" {
		return cfg.PIDFile
	}
	return defaultPIDFile(cfg.WorkingDir)
}

// defaultPIDFile mirrors the keeld detach-time default: keeld.pid in the
// working directory, which itself defaults to the binary directory.
func defaultPIDFile(workingDir string) string {
	if workingDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return ""
		}
		workingDir = filepath.Dir(exe)
	}
	return filepath.Join(workingDir, "keeld.pid")
}
