// Package oserr translates OS error codes into readable diagnostics.
package oserr

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Message renders err for a diagnostic line. When err wraps an OS error code
// the message carries the errno name alongside its description.
func Message(err error) string {
	if err == nil {
		return "success"
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		if name := unix.ErrnoName(errno); name != "" {
			return fmt.Sprintf("%s (%s)", errno.Error(), name)
		}
		return errno.Error()
	}
	return err.Error()
}
