package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/manifest"
	"github.com/flux-lang/flux/internal/parser"
	"github.com/flux-lang/flux/internal/position"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse Flux sources and report diagnostics",
		Long: `Parse the given Flux source files and print their diagnostics to
stderr. With no arguments the manifest entry file is checked. Exits
non-zero when any file has errors or the project manifest rejects this
toolchain's language version.`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := commonlog.GetLogger("flux.check")

	files := args
	if path, err := manifest.Find("."); err == nil {
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		if err := m.Check(manifest.LanguageVersion); err != nil {
			return fmt.Errorf("manifest gate: %w", err)
		}
		log.Debugf("manifest %s accepts language %s", path, manifest.LanguageVersion)
		if len(files) == 0 && m.Entry != "" {
			files = []string{filepath.Join(filepath.Dir(path), m.Entry)}
		}
	}
	if len(files) == 0 {
		return errors.New("no input files")
	}

	total := 0
	for _, file := range files {
		n, err := checkFile(file)
		if err != nil {
			return err
		}
		total += n
	}
	if total == 1 {
		return errors.New("1 error")
	}
	if total > 1 {
		return fmt.Errorf("%d errors", total)
	}
	return nil
}

// checkFile parses one file, renders its diagnostics to stderr, and
// returns the error count.
func checkFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	src := string(data)
	_, sink := parser.ParseSource(src, path)
	if sink.Len() > 0 {
		r := diagnostics.NewRenderer(os.Stderr, useColor())
		r.Render(position.NewSourceFile(path, src), sink.All())
	}
	return sink.ErrorCount(), nil
}
