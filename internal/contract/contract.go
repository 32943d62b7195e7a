// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "context"

// commitFormat is the pretty-format used when reading a single commit's
// metadata. Fields are separated by the unit separator so subjects containing
// pipes or tabs cannot break the parse. %aI/%cI emit strict ISO timestamps.
const commitFormat = "%H%x1f%T%x1f%P%x1f%an%x1f%ae%x1f%aI%x1f%cn%x1f%ce%x1f%cI%x1f%s%x1f%b"

// CommitFieldSep separates fields in ReadCommit output.
const CommitFieldSep = "\x1f"

// GitClient defines the read-only repository queries the hook runtime needs.
// This allows the session logic to be tested without needing a real git
// executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Reference Resolution ---

	// RevParse resolves a revision expression to a full commit id.
	RevParse(ctx context.Context, repoPath string, rev string) (string, error)

	// ListRefs returns every existing reference and the id it points to.
	ListRefs(ctx context.Context, repoPath string) (map[string]string, error)

	// --- History Traversal ---

	// RevList walks history from the include tips, subtracting everything
	// reachable from the exclude set, and returns ids newest first.
	RevList(ctx context.Context, repoPath string, include, exclude []string) ([]string, error)

	// ReadCommit returns the field-delimited metadata of one commit, with
	// no history walk. Fields are separated by CommitFieldSep in the order
	// id, tree, parents, author name/email/date, committer name/email/date,
	// subject, body.
	ReadCommit(ctx context.Context, repoPath string, id string) ([]byte, error)

	// --- Object Content / Identity ---

	// ShowBlob returns the content of the object at revision:path.
	ShowBlob(ctx context.Context, repoPath string, revision, path string) ([]byte, error)

	// ListConfig returns the repository configuration as NUL-delimited
	// "name\nvalue" records (git config -z --list).
	ListConfig(ctx context.Context, repoPath string) ([]byte, error)

	// CheckMailmap canonicalizes a "Name <email>" identity against the
	// repository mailmap. Unknown identities pass through unchanged.
	CheckMailmap(ctx context.Context, repoPath string, identity string) (string, error)
}
