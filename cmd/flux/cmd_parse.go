package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/parser"
	"github.com/flux-lang/flux/internal/position"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Flux source file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			src := string(data)
			prog, sink := parser.ParseSource(src, args[0])
			if sink.Len() > 0 {
				r := diagnostics.NewRenderer(cmd.ErrOrStderr(), useColor())
				r.Render(position.NewSourceFile(args[0], src), sink.All())
			}

			if err := ast.Fprint(cmd.OutOrStdout(), prog); err != nil {
				return err
			}
			count := 0
			ast.Inspect(prog, func(ast.Node) bool {
				count++
				return true
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%d nodes\n", count)

			if n := sink.ErrorCount(); n > 0 {
				return fmt.Errorf("%d errors", n)
			}
			return nil
		},
	}
}
