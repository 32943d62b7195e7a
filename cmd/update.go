package cmd

import (
	"fmt"
	"os"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/outwriter"
	"github.com/spf13/cobra"
)

// updateCmd is the server-side update hook entry point. Git invokes it once
// per ref with the ref name and the old/new ids as arguments; a non-zero
// exit rejects that single ref.
var updateCmd = &cobra.Command{
	Use:     "update <ref> <old-id> <new-id>",
	Short:   "Run as the update hook for one ref.",
	Args:    cobra.ExactArgs(3),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		ref, oldID, newID := args[0], args[1], args[2]
		if err := contract.ValidateRefUpdate(ref, oldID, newID); err != nil {
			return err
		}
		tracker.Record(ref, oldID, newID)

		env, err := buildPolicyEnv(rootCtx)
		if err != nil {
			return err
		}

		commits, err := tracker.Commits(rootCtx, ref)
		if err != nil {
			return err
		}

		ok := true
		for _, commit := range commits {
			if !registry.RunAll(rootCtx, env, commit, ref) {
				ok = false
			}
		}

		outwriter.PrintSink(os.Stderr, sink, cfg)
		if !ok {
			return fmt.Errorf("update of %s rejected (%d problems reported)", ref, sink.Len())
		}
		return nil
	},
}
