// Package proginfo holds the process-wide description of the running program:
// the parsed command sequence, the usage synopsis, and the shared run/stop
// indicator that signal handling and application loops communicate through.
//
// An Info can be constructed directly for tests and embedding. The package
// additionally keeps one process-wide instance behind Initialize/Current;
// misuse of that pair (double initialization, use before initialization,
// invalid input) is a programmer error and panics.
package proginfo

import (
	"path/filepath"
	"sync/atomic"

	"keel/internal/command"
)

// Info describes the running program. Apart from the run/stop indicator it is
// immutable after construction.
type Info struct {
	commands []command.Command
	synopsis string
	state    atomic.Int32
}

// Run indicator states. A stop request is terminal: once stopped, the
// indicator never reports running again, even when the request landed
// before the run phase began.
const (
	runIdle int32 = iota
	runActive
	runStopped
)

// New constructs an Info from a parsed command sequence. The sequence must be
// non-empty and its first command valid; violating that is a programmer error
// and panics.
func New(commands []command.Command, synopsis string) *Info {
	if len(commands) == 0 {
		panic("proginfo: empty command sequence")
	}
	if !commands[0].Valid() {
		panic("proginfo: invalid program command")
	}
	return &Info{commands: commands, synopsis: synopsis}
}

// Commands returns the parsed command sequence. The first entry is the
// program identity.
func (i *Info) Commands() []command.Command { return i.commands }

// Synopsis returns the usage synopsis supplied by the application.
func (i *Info) Synopsis() string { return i.synopsis }

// ProgramName returns the display name: the filename component of the
// program command.
func (i *Info) ProgramName() string {
	return filepath.Base(i.commands[0].Name())
}

// MarkRunning sets the run indicator when no stop has been requested yet.
// Called once when the run phase begins; a stop requested before that wins.
func (i *Info) MarkRunning() { i.state.CompareAndSwap(runIdle, runActive) }

// Running reports whether the program should keep running. Application loops
// poll this.
func (i *Info) Running() bool { return i.state.Load() == runActive }

// RequestStop clears the run indicator. Safe to call from signal handling;
// repeated calls are idempotent, and a request delivered before MarkRunning
// still takes effect.
func (i *Info) RequestStop() { i.state.Store(runStopped) }

var instance atomic.Pointer[Info]

// Initialized reports whether the process-wide instance is set.
func Initialized() bool { return instance.Load() != nil }

// Initialize sets the process-wide instance. It panics when called twice.
func Initialize(commands []command.Command, synopsis string) *Info {
	info := New(commands, synopsis)
	if !instance.CompareAndSwap(nil, info) {
		panic("proginfo: already initialized")
	}
	return info
}

// Current returns the process-wide instance. It panics when Initialize has
// not been called.
func Current() *Info {
	info := instance.Load()
	if info == nil {
		panic("proginfo: not initialized")
	}
	return info
}
