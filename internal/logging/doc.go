// Package logging owns the process diagnostic stream and the structured
// loggers built on top of it.
//
// The Sink is a line-oriented destination that starts on standard error and
// can be redirected to a file while the process runs; it persists until
// process exit. Detached daemons enable its timestamp prefix so log files
// remain readable without a terminal session around them. Loggers are slog
// handles writing through the sink with a compact console format.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits through the same redirectable stream.
package logging
