package lifecycle

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"keel/internal/logging"
	"keel/internal/proginfo"
)

// WireSignals installs the default signal policy: SIGINT clears the run
// indicator so the application loop can stop cooperatively, SIGTERM ends the
// process immediately after the shutdown hooks run. The returned function
// uninstalls the handlers.
func WireSignals(info *proginfo.Info) func() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				switch sig {
				case syscall.SIGINT:
					info.RequestStop()
				case syscall.SIGTERM:
					runShutdownHooks()
					os.Exit(1)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// WithShutdownOnError runs fn and converts any escaping error or panic into
// a stop request, turning a failure deep inside request handling into an
// orderly shutdown instead of a crash. where names the call context for the
// diagnostic.
func WithShutdownOnError(info *proginfo.Info, logger *slog.Logger, where string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err != nil {
		info.RequestStop()
		logger.Error("shutting down",
			logging.String("where", where), logging.Error(err))
	}
}
