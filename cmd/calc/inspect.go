package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calc/interpreter-go/pkg/lexer"
	"calc/interpreter-go/pkg/parser"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a source file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for tok, err := range lexer.New(src).All() {
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
			}
			return nil
		},
	}
}

func newASTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the parsed statements of a source file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			stmts, err := parser.ParseSource(src)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(stmts, "", "  ")
			if err != nil {
				return fmt.Errorf("encode ast: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
