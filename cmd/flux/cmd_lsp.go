package main

import (
	"github.com/spf13/cobra"

	"github.com/flux-lang/flux/internal/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the Flux language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewServer(version).RunStdio()
		},
	}
}
