// Package blobstage materializes historical file content into the session's
// scratch directory so consumers can hand real paths to external tools.
// Each (revision, path) pair is read from the object store at most once per
// session.
package blobstage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
)

const cacheSection = "blobstage"

// Stage writes the content of revision:path to a file under the session
// temp dir and returns its location. Repeated calls with the same pair
// return the cached location without re-reading the repository. A pair that
// does not resolve to an object is a retrieval error.
func Stage(ctx context.Context, sess *session.Session, revision, path string) (string, error) {
	key := revision + ":" + path
	cache := sess.Cache(cacheSection)
	if cached, ok := cache[key]; ok {
		return cached.(string), nil
	}

	content, err := sess.Git.ShowBlob(ctx, sess.RepoPath, revision, path)
	if err != nil {
		return "", schema.NewRetrievalError(fmt.Sprintf("show %s", key), err)
	}

	dir, err := sess.TempDir()
	if err != nil {
		return "", fmt.Errorf("cannot create staging directory: %w", err)
	}

	local := filepath.Join(dir, stagedName(key, path))
	if err := os.WriteFile(local, content, 0o600); err != nil {
		return "", fmt.Errorf("cannot stage %s: %w", key, err)
	}
	cache[key] = local
	return local, nil
}

// stagedName derives a collision-free file name: a hash of the full
// (revision, path) key keeps distinct pairs apart, the base name keeps the
// file recognizable in tooling output.
func stagedName(key, path string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:12] + "-" + filepath.Base(path)
}
