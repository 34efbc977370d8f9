package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// OpenMode selects how Redirect opens the target file.
type OpenMode int

const (
	// Truncate discards previous file contents.
	Truncate OpenMode = iota
	// Append preserves previous file contents.
	Append
)

func (m OpenMode) flag() int {
	if m == Append {
		return os.O_APPEND
	}
	return os.O_TRUNC
}

// ParseOpenMode maps a config string to an OpenMode.
func ParseOpenMode(value string) (OpenMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "truncate", "":
		return Truncate, nil
	case "append":
		return Append, nil
	default:
		return Truncate, fmt.Errorf("log mode: unsupported value %q", value)
	}
}

// Sink is the process diagnostic stream. It writes line-oriented output to
// standard error until redirected to a file, and optionally prefixes each
// line with a timestamp.
type Sink struct {
	mu         sync.Mutex
	w          io.Writer
	file       *os.File
	timestamps bool
}

// NewSink returns a sink writing to standard error.
func NewSink() *Sink {
	return &Sink{w: os.Stderr}
}

// NewSinkWriter returns a sink writing to w. Intended for tests.
func NewSinkWriter(w io.Writer) *Sink {
	return &Sink{w: w}
}

// SetTimestamps toggles the per-line timestamp prefix.
func (s *Sink) SetTimestamps(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamps = on
}

// Redirect switches the sink to the given file, creating it as needed. The
// previous redirection target, if any, is closed; the initial standard error
// destination is left open.
func (s *Sink) Redirect(path string, mode OpenMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|mode.flag(), 0o644)
	if err != nil {
		return fmt.Errorf("redirect diagnostics to %q: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = f
	s.w = f
	return nil
}

// Write implements io.Writer for slog handlers. Each call is treated as one
// line.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timestamps {
		if _, err := io.WriteString(s.w, time.Now().Format("2006-01-02 15:04:05 ")); err != nil {
			return 0, err
		}
	}
	return s.w.Write(p)
}

// Printf writes one formatted diagnostic line, appending a newline when the
// format does not end with one.
func (s *Sink) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, _ = s.Write([]byte(line))
}

// IsTerminal reports whether the sink currently writes to a terminal.
func (s *Sink) IsTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
