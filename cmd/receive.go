package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/outwriter"
	"github.com/boudekerk/githooks/schema"
	"github.com/spf13/cobra"
)

// preReceiveCmd is the pre-receive hook entry point: ref update triplets
// arrive on stdin, one per line, and a non-zero exit rejects the whole push.
var preReceiveCmd = &cobra.Command{
	Use:     "pre-receive",
	Short:   "Run as the pre-receive hook, reading ref updates from stdin.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runReceive(cmd.InOrStdin(), true)
	},
}

// postReceiveCmd is the post-receive hook entry point. It sees the same
// stdin format after the refs have moved; its exit code cannot affect the
// push anymore, so problems are reported but never returned as an error.
var postReceiveCmd = &cobra.Command{
	Use:     "post-receive",
	Short:   "Run as the post-receive hook, reading ref updates from stdin.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runReceive(cmd.InOrStdin(), false)
	},
}

// parseReceiveLine decodes one "old new ref" stdin line.
func parseReceiveLine(line string) (schema.RefUpdate, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return schema.RefUpdate{}, schema.NewParseError(fmt.Sprintf("malformed hook input line %q", line))
	}
	oldID, newID, ref := fields[0], fields[1], fields[2]
	if err := contract.ValidateRefUpdate(ref, oldID, newID); err != nil {
		return schema.RefUpdate{}, err
	}
	return schema.RefUpdate{RefName: ref, OldID: oldID, NewID: newID}, nil
}

// readReceiveInput records every stdin triplet into the tracker. A
// malformed line is a structural error and aborts the whole operation.
func readReceiveInput(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		update, err := parseReceiveLine(line)
		if err != nil {
			return err
		}
		tracker.Record(update.RefName, update.OldID, update.NewID)
	}
	return scanner.Err()
}

// runReceive resolves every recorded ref independently and runs the
// registered checks over each range. One ref failing to resolve is reported
// to the sink and does not short-circuit the others.
func runReceive(r io.Reader, enforce bool) error {
	if err := readReceiveInput(r); err != nil {
		return err
	}

	env, err := buildPolicyEnv(rootCtx)
	if err != nil {
		return err
	}

	ok := true
	for _, ref := range tracker.Refs() {
		commits, err := tracker.Commits(rootCtx, ref)
		if err != nil {
			sink.Recordf("receive", "cannot resolve %s: %v", ref, err)
			ok = false
			continue
		}
		for _, commit := range commits {
			if !registry.RunAll(rootCtx, env, commit, ref) {
				ok = false
			}
		}
	}

	outwriter.PrintSink(os.Stderr, sink, cfg)
	if enforce && !ok {
		return fmt.Errorf("push rejected (%d problems reported)", sink.Len())
	}
	return nil
}
