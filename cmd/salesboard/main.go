// Command salesboard renders sales KPI cards in the terminal.
package main

import (
	"errors"
	"os"

	"github.com/rshade/salesboard/internal/cli"
	"github.com/rshade/salesboard/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	return extractExitCode(root.Execute())
}

// extractExitCode maps a command error to a process exit code. A
// TargetExitError carries its own code; any other error exits 1.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var targetErr *cli.TargetExitError
	if errors.As(err, &targetErr) {
		return targetErr.ExitCode
	}
	return 1
}
