package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/flux-lang/flux/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check Flux sources whenever they change",
		Long: `Watch a directory tree and re-parse any .flux file that is created
or written, printing fresh diagnostics after each change. Changes are
debounced so editor save bursts produce a single check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := commonlog.GetLogger("flux.watch")

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.AddTree(root); err != nil {
		return err
	}

	deb := watch.NewDebouncer(200 * time.Millisecond)
	defer deb.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", root)
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if !ev.Op.Has(watch.Create) && !ev.Op.Has(watch.Write) {
				continue
			}
			if ev.Op.Has(watch.Create) {
				if fi, err := os.Stat(ev.Path); err == nil && fi.IsDir() {
					if err := w.AddTree(ev.Path); err != nil {
						log.Warningf("watch %s: %s", ev.Path, err)
					}
					continue
				}
			}
			if filepath.Ext(ev.Path) != ".flux" {
				continue
			}
			path := ev.Path
			deb.Trigger(path, func() {
				n, err := checkFile(path)
				switch {
				case err != nil:
					log.Warningf("check %s: %s", path, err)
				case n == 0:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				}
			})
		case err := <-w.Errors():
			log.Errorf("watcher: %s", err)
		}
	}
}
