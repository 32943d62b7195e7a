package cmd

import (
	"fmt"
	"os"

	"github.com/boudekerk/githooks/internal/outwriter"
	"github.com/spf13/cobra"
)

var refsShowCommits bool

// refsCmd is an inspection command: it reads the same stdin triplets the
// receive hooks get and prints what each ref would resolve to, without
// running any checks. Useful for dry-running a push against a repository.
var refsCmd = &cobra.Command{
	Use:     "refs",
	Short:   "Resolve ref update triplets from stdin and show their commit ranges.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := readReceiveInput(cmd.InOrStdin()); err != nil {
			return err
		}

		var rows []outwriter.RefRow
		for _, ref := range tracker.Refs() {
			update, err := tracker.Range(ref)
			if err != nil {
				return err
			}
			row := outwriter.RefRow{
				Ref:   ref,
				Kind:  update.Kind(),
				OldID: update.OldID,
				NewID: update.NewID,
			}
			commits, err := tracker.Commits(rootCtx, ref)
			if err != nil {
				row.Err = err.Error()
			} else {
				row.Commits = len(commits)
			}
			rows = append(rows, row)
		}
		if err := outwriter.PrintRefSummary(os.Stdout, rows); err != nil {
			return err
		}

		if refsShowCommits {
			for _, ref := range tracker.Refs() {
				commits, err := tracker.Commits(rootCtx, ref)
				if err != nil {
					continue // already reported in the summary row
				}
				if len(commits) == 0 {
					continue
				}
				fmt.Printf("\n%s\n", ref)
				if err := outwriter.PrintCommits(os.Stdout, commits, cfg); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	refsCmd.Flags().BoolVar(&refsShowCommits, "commits", false, "also list each ref's commits")
}
