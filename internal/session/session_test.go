package session

import (
	"os"
	"testing"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSections(t *testing.T) {
	sess := New("/repo", new(contract.MockGitClient))

	commits := sess.Cache("commits")
	assert.NotNil(t, commits)
	commits["abc"] = 1

	// Same section name returns the same store.
	again := sess.Cache("commits")
	assert.Equal(t, 1, again["abc"])

	// Different sections are independent.
	ranges := sess.Cache("ranges")
	assert.NotContains(t, ranges, "abc")
}

func TestInvalidateDropsOneSection(t *testing.T) {
	sess := New("/repo", new(contract.MockGitClient))
	sess.Cache("commits")["abc"] = 1
	sess.Cache("ranges")["x..y"] = 2

	sess.Invalidate("commits")

	assert.Empty(t, sess.Cache("commits"), "invalidated section comes back empty")
	assert.Equal(t, 2, sess.Cache("ranges")["x..y"], "other sections are untouched")
}

func TestTempDirLifecycle(t *testing.T) {
	sess := New("/repo", new(contract.MockGitClient))

	dir, err := sess.TempDir()
	require.NoError(t, err)
	assert.DirExists(t, dir)

	// Second call returns the same directory.
	again, err := sess.TempDir()
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	require.NoError(t, sess.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "Close removes the scratch directory")
}

func TestCloseWithoutTempDir(t *testing.T) {
	sess := New("/repo", new(contract.MockGitClient))
	assert.NoError(t, sess.Close(), "closing a session that never staged anything is a no-op")
}
