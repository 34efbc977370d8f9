package daemonize

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"golang.org/x/sys/unix"

	"keel/internal/logging"
	"keel/internal/oserr"
	"keel/internal/pidfile"
)

// StageEnv carries the detach stage between the staged re-executions.
const StageEnv = "KEEL_DETACH_STAGE"

// Options configures the detached process environment.
type Options struct {
	WorkingDir string
	PIDFile    string
	LogFile    string
	LogMode    logging.OpenMode
	Sink       *logging.Sink

	// Exit terminates the process. Nil means os.Exit. The lifecycle runner
	// injects its own exit so registered shutdown hooks run on every exit
	// path, fatal detach steps included.
	Exit func(int)
}

// Detach turns the calling process into a background daemon and runs startup
// inside it. In the foreground process and the intermediate stage it never
// returns: both exit once the next stage is spawned. It returns, after
// startup completes, only in the final detached process.
//
// Any error escaping startup is diagnosed and converted into process
// termination with a failure status.
func Detach(startup func() error, opts Options) {
	if startup == nil {
		panic("daemonize: nil startup")
	}
	sink := opts.Sink
	if sink == nil {
		sink = logging.NewSink()
	}
	exit := opts.Exit
	if exit == nil {
		exit = os.Exit
	}

	if reason := invalidPathReason(opts); reason != "" {
		sink.Printf("cannot detach process because %s", reason)
		exit(0)
	}

	switch stage() {
	case 0:
		// The equivalent of the first fork: leave a detached successor
		// behind and let the foreground parent exit with success.
		if err := respawn(1); err != nil {
			sink.Printf("first respawn failed (%s)", oserr.Message(err))
			exit(1)
		}
		exit(0)

	case 1:
		unix.Umask(unix.S_IWGRP | unix.S_IRWXO)
		if err := sink.Redirect(opts.LogFile, opts.LogMode); err != nil {
			sink.Printf("%s", err)
			exit(1)
		}
		if _, err := unix.Setsid(); err != nil {
			sink.Printf("cannot create a new session (%s)", oserr.Message(err))
			exit(1)
		}
		// The equivalent of the second fork: the successor stays in this
		// session without leading it.
		if err := respawn(2); err != nil {
			sink.Printf("second respawn failed (%s)", oserr.Message(err))
			exit(1)
		}
		exit(0)

	case 2:
		unix.Umask(unix.S_IWGRP | unix.S_IRWXO)
		if err := sink.Redirect(opts.LogFile, opts.LogMode); err != nil {
			sink.Printf("%s", err)
			exit(1)
		}
		if err := pidfile.Write(opts.PIDFile, os.Getpid()); err != nil {
			sink.Printf("%s", err)
			exit(1)
		}
		if err := os.Chdir(opts.WorkingDir); err != nil {
			sink.Printf("cannot change working directory to %q (%s)",
				opts.WorkingDir, oserr.Message(err))
			exit(1)
		}
		closeStdio(sink, exit)
		runGuarded(startup, sink, exit)

	default:
		sink.Printf("invalid detach stage %q", os.Getenv(StageEnv))
		exit(1)
	}
}

// invalidPathReason reports why detaching cannot proceed, or "" when the
// paths are usable.
func invalidPathReason(opts Options) string {
	if opts.WorkingDir == "" {
		return "the working directory isn't specified"
	}
	if opts.PIDFile == "" || opts.PIDFile == "." || opts.PIDFile == ".." {
		return "the PID file name is invalid"
	}
	if opts.LogFile == "" || opts.LogFile == "." || opts.LogFile == ".." {
		return "the log file name is invalid"
	}
	return ""
}

func stage() int {
	value := os.Getenv(StageEnv)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return n
}

// respawn re-executes the binary with the same arguments at the next stage
// and releases the child.
func respawn(next int) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("%s=%d", StageEnv, next))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func closeStdio(sink *logging.Sink, exit func(int)) {
	for _, std := range []struct {
		fd   int
		name string
	}{
		{0, "input"},
		{1, "output"},
		{2, "error"},
	} {
		if err := unix.Close(std.fd); err != nil {
			sink.Printf("cannot close standard %s descriptor (%s)",
				std.name, oserr.Message(err))
			exit(1)
		}
	}
}

func runGuarded(startup func() error, sink *logging.Sink, exit func(int)) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("startup panic: %v", r)
			}
		}()
		return startup()
	}()
	if err != nil {
		sink.Printf("%s", err)
		exit(1)
	}
}
