package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"calc/interpreter-go/pkg/driver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		// Failed input units have already been reported one by one.
		var failed *driver.UnitsFailedError
		if !errors.As(err, &failed) {
			fmt.Fprintf(stderr, "calc: %v\n", err)
		}
		return 1
	}
	return 0
}
