package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	hookMarkerStart = "# >>> githooks %s hook >>>"
	hookMarkerEnd   = "# <<< githooks %s hook <<<"
)

var hookPhases = []string{"update", "pre-receive", "post-receive"}

var hookPhase string

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the repository's hook scripts",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install githooks into the repository's hook scripts",
	RunE: func(_ *cobra.Command, _ []string) error {
		return forEachPhase(func(phase, path string) error {
			section := generateHookSection(phase)
			existing, err := os.ReadFile(path)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("reading hook file %s: %w", path, err)
			}

			var content string
			if os.IsNotExist(err) || len(existing) == 0 {
				// No existing hook script; create a fresh one
				content = "#!/bin/sh\n" + section
			} else {
				content = replaceHookSection(string(existing), section, phase)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating hooks directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
				return fmt.Errorf("writing hook file %s: %w", path, err)
			}
			fmt.Printf("installed %s hook at %s\n", phase, path)
			return nil
		})
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the githooks sections from the repository's hook scripts",
	RunE: func(_ *cobra.Command, _ []string) error {
		return forEachPhase(func(phase, path string) error {
			existing, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading hook file %s: %w", path, err)
			}
			content := removeHookSection(string(existing), phase)
			if content == string(existing) {
				return nil
			}
			if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
				return fmt.Errorf("writing hook file %s: %w", path, err)
			}
			fmt.Printf("removed %s hook section from %s\n", phase, path)
			return nil
		})
	},
}

// forEachPhase resolves the hooks directory and applies fn to each selected
// phase's script path.
func forEachPhase(fn func(phase, path string) error) error {
	dir, err := hooksDir(rootCtx)
	if err != nil {
		return err
	}
	for _, phase := range hookPhases {
		if hookPhase != "" && hookPhase != phase {
			continue
		}
		if err := fn(phase, filepath.Join(dir, phase)); err != nil {
			return err
		}
	}
	return nil
}

// hooksDir locates <git-dir>/hooks for the target repository.
func hooksDir(ctx context.Context) (string, error) {
	client := contract.NewLocalGitClient()
	searchPath := viper.GetString("repo")
	if searchPath == "" {
		searchPath = "."
	}
	out, err := client.Run(ctx, searchPath, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return filepath.Join(strings.TrimSpace(string(out)), "hooks"), nil
}

// generateHookSection builds the marker-delimited script block for one
// phase. The markers make install idempotent: a reinstall replaces the
// block instead of appending a second copy.
func generateHookSection(phase string) string {
	var b strings.Builder
	fmt.Fprintf(&b, hookMarkerStart+"\n", phase)
	fmt.Fprintf(&b, "githooks %s \"$@\" || exit $?\n", phase)
	fmt.Fprintf(&b, hookMarkerEnd+"\n", phase)
	return b.String()
}

// replaceHookSection swaps an existing marker-delimited block for the new
// section, or appends the section when no block exists yet.
func replaceHookSection(existing, section, phase string) string {
	start := fmt.Sprintf(hookMarkerStart, phase)
	end := fmt.Sprintf(hookMarkerEnd, phase)

	startIdx := strings.Index(existing, start)
	endIdx := strings.Index(existing, end)
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}
	tail := existing[endIdx+len(end):]
	tail = strings.TrimPrefix(tail, "\n")
	return existing[:startIdx] + section + tail
}

// removeHookSection deletes the marker-delimited block for one phase.
func removeHookSection(existing, phase string) string {
	start := fmt.Sprintf(hookMarkerStart, phase)
	end := fmt.Sprintf(hookMarkerEnd, phase)

	startIdx := strings.Index(existing, start)
	endIdx := strings.Index(existing, end)
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		return existing
	}
	tail := existing[endIdx+len(end):]
	tail = strings.TrimPrefix(tail, "\n")
	return existing[:startIdx] + tail
}

func init() {
	hookCmd.PersistentFlags().StringVar(&hookPhase, "phase", "", "limit to one phase (update, pre-receive, post-receive)")
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
}
