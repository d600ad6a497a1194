package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"calc/interpreter-go/pkg/driver"
)

// cliOptions holds the persistent flags.
type cliOptions struct {
	configPath string
	verbose    bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "calc",
		Short: "calc - a small dynamically-typed scripting language",
		Long: `calc evaluates scripts made of numbers, strings, booleans, lists and
dicts, with if/while control flow and user-defined functions.

Without a subcommand calc starts the interactive prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: calc.yml, calc.yaml or calc.toml in the working directory)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newRunCommand(opts),
		newREPLCommand(opts),
		newTokensCommand(),
		newASTCommand(),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads --config or discovers a config file, then applies
// environment overrides.
func (o *cliOptions) loadConfig() (*driver.Config, error) {
	var (
		cfg *driver.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = driver.LoadConfig(o.configPath)
	} else {
		cfg, err = driver.DiscoverConfig(".")
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (o *cliOptions) logger(w io.Writer) *slog.Logger {
	if !o.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
