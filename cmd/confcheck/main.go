// confcheck validates line oriented configuration files.
//
// Usage:
//
//	confcheck -b verbose -s mode=fast --allow mode=fast,slow app.conf
//
// Exit codes:
//   - 0: Configuration is valid
//   - 1: Configuration is invalid (load or validation error)
//   - 2: Usage error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ppacher/line-conf/conf"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprintln(stderr, cmd.UsageString())
		return exitUsage
	}

	var le *conf.LoadError
	if errors.As(err, &le) {
		fmt.Fprintf(stderr, "Configuration error (%s):\n  %v\n", le.Kind, err)
		return exitInvalid
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitInvalid
}
