package main

import (
	"github.com/spf13/cobra"

	"calc/interpreter-go/pkg/driver"
)

func newREPLCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}
}

func runREPL(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	term := driver.OpenTerminal(cfg)
	defer term.Close()
	session := driver.NewSession(driver.SessionOptions{
		Config: cfg,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Input:  term,
		Logger: opts.logger(cmd.ErrOrStderr()),
	})
	defer session.Close()
	return driver.NewREPL(session, term).Run()
}
