package common

var (
	Version = "v0.5.1"

	silentFlag bool
	debugFlag  bool
	traceFlag  bool
)

// DefineVerbosity sets the process-wide logging verbosity. Trace implies
// debug, and silent wins over both.
func DefineVerbosity(silent, debug, trace bool) {
	silentFlag = silent
	debugFlag = debug || trace
	traceFlag = trace
}

func Silent() bool {
	return silentFlag && !debugFlag
}

func DebugFlag() bool {
	return debugFlag
}

func TraceFlag() bool {
	return traceFlag
}
