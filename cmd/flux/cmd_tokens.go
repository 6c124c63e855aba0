package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flux-lang/flux/internal/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream for a Flux source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			lx := lexer.New(string(data), args[0])
			out := cmd.OutOrStdout()
			for {
				tok := lx.NextToken()
				fmt.Fprintf(out, "%4d:%-3d %-12s %q\n",
					tok.Span.Start.Line, tok.Span.Start.Column, tok.Type, tok.Lexeme)
				if tok.Type == lexer.TokenEOF {
					return nil
				}
			}
		},
	}
}
