// Package command parses raw argv into structured commands.
//
// A command is a name, a set of long options, and an ordered list of
// parameters. The grammar recognizes "--name", "--name=value", and the bare
// "--" end-of-options marker; single-dash tokens are never options. Parsing
// runs in single-command mode, where everything after the options belongs to
// the one command, or multi-command mode, where each non-option token opens
// the next command in a chain.
//
// Option lookups return an OptRef, a lightweight view that is valid only when
// the option is actually present. Call sites validate valency through the
// OptRef combinators instead of inspecting the option map directly.
package command
