package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"keel/internal/pidfile"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Request a cooperative keeld shutdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			pidPath := ctx.resolvePIDFile(cfg)
			if pidPath == "" {
				return errors.New("unable to determine the PID file location")
			}

			pid, err := pidfile.Read(pidPath)
			if err != nil {
				return fmt.Errorf("keeld does not appear to be running: %w", err)
			}
			if !processAlive(pid) {
				return fmt.Errorf("keeld process %d is gone (stale pid file %s)", pid, pidPath)
			}

			// The daemon treats SIGINT as a cooperative stop request.
			if err := unix.Kill(pid, unix.SIGINT); err != nil {
				return fmt.Errorf("signal keeld process %d: %w", pid, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stop requested for keeld (pid %d)\n", pid)

			deadline := time.Now().Add(wait)
			for time.Now().Before(deadline) {
				if !processAlive(pid) {
					fmt.Fprintln(cmd.OutOrStdout(), "keeld stopped")
					return nil
				}
				time.Sleep(200 * time.Millisecond)
			}
			return fmt.Errorf("keeld (pid %d) still running after %s", pid, wait)
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 10*time.Second, "How long to wait for keeld to exit")
	return cmd
}
