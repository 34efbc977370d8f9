// Package config loads and validates the keeld runtime configuration.
//
// Configuration lives in a TOML file, defaulting to
// ~/.config/keel/keel.toml. Every field has a usable default so a missing
// file is not an error; command-line options override file values at the
// call site.
package config
