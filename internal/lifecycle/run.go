package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"keel/internal/daemonize"
	"keel/internal/logging"
	"keel/internal/oserr"
	"keel/internal/pidfile"
	"keel/internal/proginfo"
)

// StartOptions configures one run of the program.
type StartOptions struct {
	// Detach moves the run into a background daemon.
	Detach bool

	// Executable is the path to the running binary. Required.
	Executable string

	// WorkingDir defaults to the executable's directory.
	WorkingDir string

	// PIDFile and LogFile default, only when detaching, to the executable's
	// filename with ".pid" and ".log" extensions under the working
	// directory. A foreground run leaves them unset unless provided.
	PIDFile string
	LogFile string
	LogMode logging.OpenMode

	Sink *logging.Sink
	Info *proginfo.Info
}

// Start runs startup under the lifecycle contract. The registry must be
// initialized and not already running; violating that, a nil startup, or an
// empty executable path is a programmer error and panics.
//
// Foreground runs execute startup in this process; detached runs delegate
// the whole run closure to the daemonizer. Either way a failing startup
// terminates the process with a failure status after a diagnostic.
func Start(opts StartOptions, startup func() error) {
	if startup == nil {
		panic("lifecycle: nil startup")
	}
	if opts.Executable == "" {
		panic("lifecycle: empty executable path")
	}
	info := opts.Info
	if info == nil {
		panic("lifecycle: nil info")
	}
	if info.Running() {
		panic("lifecycle: already running")
	}
	sink := opts.Sink
	if sink == nil {
		sink = logging.NewSink()
	}

	applyDefaults(&opts)
	if opts.Detach {
		for _, path := range []string{opts.PIDFile, opts.LogFile} {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				sink.Printf("cannot create directory for %q (%s)", path, oserr.Message(err))
				Exit(1)
			}
		}
	}

	sink.SetTimestamps(opts.Detach)

	run := func() error {
		info.MarkRunning()
		notifyReady()
		defer notifyStopping()
		return startup()
	}

	if opts.Detach {
		daemonize.Detach(run, daemonize.Options{
			WorkingDir: opts.WorkingDir,
			PIDFile:    opts.PIDFile,
			LogFile:    opts.LogFile,
			LogMode:    opts.LogMode,
			Sink:       sink,
			// Fatal detach steps must flush the shutdown hooks too.
			Exit: Exit,
		})
		return
	}

	if err := os.Chdir(opts.WorkingDir); err != nil {
		sink.Printf("cannot change the working directory to %q (%s)",
			opts.WorkingDir, oserr.Message(err))
		Exit(1)
	}
	if opts.PIDFile != "" {
		if err := pidfile.Write(opts.PIDFile, os.Getpid()); err != nil {
			sink.Printf("%s", err)
			Exit(1)
		}
	}
	if opts.LogFile != "" {
		if err := sink.Redirect(opts.LogFile, opts.LogMode); err != nil {
			sink.Printf("%s", err)
			Exit(1)
		}
	}
	if err := runGuarded(run); err != nil {
		sink.Printf("%s", err)
		Exit(1)
	}
}

// applyDefaults resolves unset paths per the defaulting rules.
func applyDefaults(opts *StartOptions) {
	if opts.WorkingDir == "" {
		opts.WorkingDir = filepath.Dir(opts.Executable)
	}
	if !opts.Detach {
		return
	}
	base := filepath.Base(opts.Executable)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if opts.PIDFile == "" {
		opts.PIDFile = filepath.Join(opts.WorkingDir, stem+".pid")
	}
	if opts.LogFile == "" {
		opts.LogFile = filepath.Join(opts.WorkingDir, stem+".log")
	}
}

func runGuarded(run func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("startup panic: %v", r)
		}
	}()
	return run()
}

// ExitUsage prints the usage line for the program and terminates with a
// failure status.
func ExitUsage(info *proginfo.Info) {
	line := "usage: " + info.ProgramName()
	if synopsis := info.Synopsis(); synopsis != "" {
		line += " " + synopsis
	}
	fmt.Fprintln(os.Stderr, line)
	Exit(1)
}
