package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// consoleHandler renders compact single-line records. Wall-clock time is the
// sink's concern (its timestamp prefix), so records carry level, message, and
// attributes only.
type consoleHandler struct {
	sink  *Sink
	level *slog.LevelVar
	color bool
	attrs []slog.Attr
	group string
}

func newConsoleHandler(sink *Sink, level *slog.LevelVar) *consoleHandler {
	return &consoleHandler{
		sink:  sink,
		level: level,
		color: sink.IsTerminal(),
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(h.levelTag(record.Level))
	b.WriteByte(' ')
	b.WriteString(record.Message)

	for _, attr := range h.attrs {
		h.appendAttr(&b, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(&b, attr)
		return true
	})
	b.WriteByte('\n')

	_, err := h.sink.Write([]byte(b.String()))
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		clone.group += "."
	}
	clone.group += name
	return &clone
}

func (h *consoleHandler) appendAttr(b *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(attr.Value))
}

func formatValue(value slog.Value) string {
	value = value.Resolve()
	text := value.String()
	if value.Kind() == slog.KindString && strings.ContainsAny(text, " \t\"") {
		return strconv.Quote(text)
	}
	return text
}

const (
	colorReset  = "\x1b[0m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	colorCyan   = "\x1b[36m"
)

func (h *consoleHandler) levelTag(level slog.Level) string {
	tag := "INF"
	color := ""
	switch {
	case level >= slog.LevelError:
		tag, color = "ERR", colorRed
	case level >= slog.LevelWarn:
		tag, color = "WRN", colorYellow
	case level < slog.LevelInfo:
		tag, color = "DBG", colorCyan
	}
	if h.color && color != "" {
		return fmt.Sprintf("%s%s%s", color, tag, colorReset)
	}
	return tag
}
