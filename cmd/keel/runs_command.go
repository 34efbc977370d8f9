package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keel/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent keeld run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if cfg.RunDB == "" {
				return errors.New("run history is disabled (set run_db in the configuration)")
			}

			store, err := runlog.Open(cfg.RunDB)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					formatStopped(run),
					fmt.Sprintf("%d", run.PID),
					formatMode(run.Detached),
					run.Outcome,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Started", "Stopped", "PID", "Mode", "Outcome"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to show")
	return cmd
}

func formatStopped(run runlog.Run) string {
	if run.StoppedAt.IsZero() {
		return "-"
	}
	return run.StoppedAt.Local().Format(time.DateTime)
}

func formatMode(detached bool) string {
	if detached {
		return "daemon"
	}
	return "foreground"
}
