package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/testplanhq/testplan/internal/infrastructure/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and re-extract when documents change",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		out := cmd.OutOrStdout()

		w, err := watch.NewDocWatcher(watchDebounce, nil, func(e watch.ChangeEvent) {
			if e.ChangeType == "remove" || e.ChangeType == "rename" {
				fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Document gone:"), e.Path)
				return
			}

			fmt.Fprintf(out, "\n%s %s (%s)\n", labelStyle.Render("Change detected:"), e.Path, e.ChangeType)
			result, err := runExtraction(cmd.Context(), e.Path)
			if err != nil {
				fmt.Fprintf(out, "%s %v\n", warnStyle.Render("Extraction failed:"), err)
				return
			}
			fmt.Fprint(out, renderExtractSummary(e.Path, result.Strategy, result.Requirements, result.Components))
		})
		if err != nil {
			return err
		}

		if err := w.WatchRecursive(dir); err != nil {
			return err
		}

		fmt.Fprintf(out, "Watching %s for document changes...\n", dir)
		return w.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"Quiet period before re-extracting after a change")
	RootCmd.AddCommand(watchCmd)
}
