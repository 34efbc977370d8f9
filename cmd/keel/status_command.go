package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"keel/internal/pidfile"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether keeld is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			pidPath := ctx.resolvePIDFile(cfg)
			if pidPath == "" {
				return errors.New("unable to determine the PID file location")
			}

			state := "not running"
			pidText := "-"
			pid, err := pidfile.Read(pidPath)
			switch {
			case err == nil && processAlive(pid):
				state = "running"
				pidText = strconv.Itoa(pid)
			case err == nil:
				state = "stale pid file"
				pidText = strconv.Itoa(pid)
			case errors.Is(err, os.ErrNotExist):
			default:
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"State", "PID", "PID File"},
				[][]string{{state, pidText, pidPath}},
			))
			return nil
		},
	}
}

// processAlive reports whether a process with the given id exists. Signal 0
// probes without delivering anything; EPERM still proves existence.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
