package main

import (
	"github.com/spf13/cobra"

	"calc/interpreter-go/pkg/driver"
	"calc/interpreter-go/pkg/interpreter"
)

func newRunCommand(opts *cliOptions) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a calc source file",
		Long: `Run evaluates FILE one input unit at a time. Errors are reported and
execution continues with the next unit; the exit status is 1 when any unit
failed. With --interactive the prompt starts afterwards in the same session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			sessionOpts := driver.SessionOptions{
				Config: cfg,
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
				Logger: opts.logger(cmd.ErrOrStderr()),
			}
			if !interactive {
				sessionOpts.Input = interpreter.NewReaderInput(cmd.InOrStdin(), cmd.OutOrStdout())
				session := driver.NewSession(sessionOpts)
				defer session.Close()
				return session.RunFile(args[0])
			}

			term := driver.OpenTerminal(cfg)
			defer term.Close()
			sessionOpts.Input = term
			session := driver.NewSession(sessionOpts)
			defer session.Close()
			if err := session.RunFile(args[0]); err != nil && session.Failures() == 0 {
				return err
			}
			return driver.NewREPL(session, term).Run()
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the prompt after running FILE")
	return cmd
}
