package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"keel/internal/config"
	"keel/internal/lifecycle"
	"keel/internal/logging"
	"keel/internal/pidfile"
	"keel/internal/proginfo"
	"keel/internal/runlog"
)

const pollInterval = 250 * time.Millisecond

// serve is the keeld run loop. It holds the instance lock, records the run
// in the history store, and heartbeats until the run indicator clears.
func serve(info *proginfo.Info, logger *slog.Logger, cfg config.Config) error {
	ctx := context.Background()

	if cfg.PIDFile != "" {
		lock, err := pidfile.Acquire(cfg.PIDFile)
		if err != nil {
			if errors.Is(err, pidfile.ErrAlreadyLocked) {
				return fmt.Errorf("%s is already running", info.ProgramName())
			}
			return err
		}
		lifecycle.OnShutdown(func() { _ = lock.Release() })
		defer lock.Release()
	}

	var store *runlog.Store
	var run runlog.Run
	if cfg.RunDB != "" {
		var err error
		store, err = runlog.Open(cfg.RunDB)
		if err != nil {
			return err
		}
		lifecycle.OnShutdown(func() { _ = store.Close() })
		defer store.Close()

		if run, err = store.Begin(ctx, os.Getpid(), cfg.Detach); err != nil {
			return err
		}
	}

	logger.Info("keeld started",
		logging.Int("pid", os.Getpid()),
		logging.Bool("detached", cfg.Detach))

	started := time.Now()
	interval := time.Duration(cfg.HeartbeatSeconds) * time.Second
	next := time.Now().Add(interval)
	for info.Running() {
		time.Sleep(pollInterval)
		if time.Now().Before(next) {
			continue
		}
		next = time.Now().Add(interval)
		lifecycle.WithShutdownOnError(info, logger, "heartbeat", func() error {
			logger.Info("heartbeat",
				logging.String("uptime", time.Since(started).Round(time.Second).String()))
			return nil
		})
	}

	if store != nil {
		if err := store.Finish(ctx, run.ID, runlog.OutcomeStopped); err != nil {
			logger.Warn("record run outcome", logging.Error(err))
		}
	}
	if cfg.PIDFile != "" {
		if err := pidfile.Remove(cfg.PIDFile); err != nil {
			logger.Warn("remove pid file", logging.Error(err))
		}
	}
	logger.Info("keeld stopped", logging.String("uptime", time.Since(started).Round(time.Second).String()))
	return nil
}
