package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/flux-lang/flux/internal/diagnostics"
)

const version = "0.4.0"

var (
	flagVerbose int
	flagNoColor bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "flux",
		Short:        "Flux language toolchain front end",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(flagVerbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored diagnostics")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// useColor decides whether diagnostics get ANSI color on stderr.
func useColor() bool {
	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return diagnostics.WriterIsTerminal(os.Stderr.Fd())
}
