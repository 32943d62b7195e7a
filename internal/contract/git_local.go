package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git %s failed in %q: %s", args[0], repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// RevParse implements the GitClient interface.
func (c *LocalGitClient) RevParse(ctx context.Context, repoPath string, rev string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListRefs implements the GitClient interface via for-each-ref.
func (c *LocalGitClient) ListRefs(ctx context.Context, repoPath string) (map[string]string, error) {
	out, err := c.Run(ctx, repoPath, "for-each-ref", "--format=%(objectname) %(refname)")
	if err != nil {
		return nil, err
	}
	refs := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		id, name, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unexpected for-each-ref line %q", line)
		}
		refs[name] = id
	}
	return refs, nil
}

// RevList implements the GitClient interface. Output order is git's default
// reverse-chronological walk, newest first.
func (c *LocalGitClient) RevList(ctx context.Context, repoPath string, include, exclude []string) ([]string, error) {
	args := []string{"rev-list"}
	args = append(args, include...)
	for _, id := range exclude {
		args = append(args, "^"+id)
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return []string{}, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// ReadCommit implements the GitClient interface with a single-commit log.
func (c *LocalGitClient) ReadCommit(ctx context.Context, repoPath string, id string) ([]byte, error) {
	return c.Run(ctx, repoPath, "log", "-n", "1", "--format="+commitFormat, id, "--")
}

// ShowBlob implements the GitClient interface.
func (c *LocalGitClient) ShowBlob(ctx context.Context, repoPath string, revision, path string) ([]byte, error) {
	return c.Run(ctx, repoPath, "cat-file", "blob", revision+":"+path)
}

// ListConfig implements the GitClient interface.
func (c *LocalGitClient) ListConfig(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "config", "-z", "--list")
}

// CheckMailmap implements the GitClient interface.
func (c *LocalGitClient) CheckMailmap(ctx context.Context, repoPath string, identity string) (string, error) {
	out, err := c.Run(ctx, repoPath, "check-mailmap", identity)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
