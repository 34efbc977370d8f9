package command

import "fmt"

// GrammarError reports malformed argv input: an empty argument vector, an
// empty command name, or an out-of-range offset.
type GrammarError struct {
	msg string
}

func (e *GrammarError) Error() string { return e.msg }

func grammarErrorf(format string, args ...any) error {
	return &GrammarError{msg: fmt.Sprintf(format, args...)}
}

// UsageError reports a well-formed command used incorrectly: an unexpected
// option or an option valency violation.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// IndexError reports a parameter index outside the parameter list.
type IndexError struct {
	msg string
}

func (e *IndexError) Error() string { return e.msg }

func indexErrorf(format string, args ...any) error {
	return &IndexError{msg: fmt.Sprintf(format, args...)}
}
