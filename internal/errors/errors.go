package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/moodverse/internal/logger"
)

const prefix = "Error: "

// Replaced in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Format renders err the way every command reports failures. Nil renders empty.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return prefix + err.Error()
}

func Formatf(format string, args ...interface{}) string {
	return prefix + fmt.Sprintf(format, args...)
}

// Soften records a recoverable failure in the log and reports whether there was one.
// Callers use it where a failure degrades to "nothing to show".
func Soften(err error, msg string, keyvals ...interface{}) bool {
	if err == nil {
		return false
	}
	logger.Warn(msg, append(keyvals, "error", err)...)
	return true
}

func Print(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(w, Format(err))
	}
}

// Fatal reports err, flushes the log and exits with status 1. A nil err does nothing.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	Print(stderr, err)
	logger.Close()
	exit(1)
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
