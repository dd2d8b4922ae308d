package common

const (
	// ExitSuccess is the normal completion exit code.
	ExitSuccess = 0
	// ExitFailure covers unexpected errors at the driver boundary.
	ExitFailure = 1
	// ExitValidation marks rejected command line or environment values.
	ExitValidation = 2
	// ExitInterrupted is used when the user cancels a run (SIGINT/SIGTERM).
	ExitInterrupted = 130
)

// ExitCode is panicked from deep call sites and recovered at main, so that
// deferred cleanup (alternate screen release, log flushing) still runs.
type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	if len(it.Message) > 0 {
		Log("%s", it.Message)
	}
}
