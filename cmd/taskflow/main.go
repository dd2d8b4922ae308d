package main

import (
	"os"

	"github.com/joshyorko/taskflow/cmd"
	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/pretty"
)

// ExitProtection recovers the panic-based exit codes used across the
// codebase, so deferred cleanup (alternate screen release in particular)
// has already run by the time the process exits.
func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.WaitLogs()
		panic(status)
	}
	common.WaitLogs()
}

func main() {
	defer ExitProtection()
	pretty.Setup()
	cmd.Execute()
}
