// Package daemonize converts the calling process into a detached background
// daemon.
//
// The classic double-fork sequence does not map onto the Go runtime, so the
// detachment is staged across re-executions of the binary instead: the
// foreground process spawns stage one and exits, stage one becomes a session
// leader and spawns stage two inside that session, and stage two is the
// daemon. A session member that is not its leader cannot reacquire a
// controlling terminal, which is exactly what the second fork buys in the
// classic sequence.
//
// Every failure past the initial path validation is fatal: a partially
// detached process has no safe identity to fall back to. Path validation
// failures exit with a success status, treated as nothing to do.
package daemonize
