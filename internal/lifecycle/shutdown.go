package lifecycle

import (
	"os"
	"sync"
)

var (
	hooksMu sync.Mutex
	hooks   []func()
	ranOnce sync.Once
)

// OnShutdown registers fn to run once, in reverse registration order, when
// the process exits through lifecycle control: Exit, a fatal startup error,
// or the terminate signal. It gives resources one last chance to flush
// regardless of the exit path.
func OnShutdown(fn func()) {
	if fn == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = append(hooks, fn)
}

// Exit runs the shutdown hooks and terminates the process with code.
func Exit(code int) {
	runShutdownHooks()
	os.Exit(code)
}

func runShutdownHooks() {
	ranOnce.Do(func() {
		hooksMu.Lock()
		pending := append([]func(){}, hooks...)
		hooksMu.Unlock()
		for i := len(pending) - 1; i >= 0; i-- {
			pending[i]()
		}
	})
}
