package pretty

import (
	"fmt"

	"github.com/joshyorko/taskflow/common"
)

// Exit panics with an ExitCode so that deferred cleanup along the call
// stack still runs; main recovers it and exits with the given code.
func Exit(code int, format string, rest ...interface{}) error {
	exit := common.ExitCode{Code: code, Message: fmt.Sprintf(format, rest...)}
	panic(exit)
}

// Guard is a runtime assertion: when the condition fails, exit with the
// given code and message.
func Guard(condition bool, code int, format string, rest ...interface{}) {
	if !condition {
		Exit(code, format, rest...)
	}
}

// Success outputs a success message in green with a newline.
func Success(message string) {
	common.Stdout("%s%s%s\n", Green, message, Reset)
}

// Warning outputs a warning message in yellow with a newline.
func Warning(message string) {
	common.Stdout("%s%s%s\n", Yellow, message, Reset)
}
