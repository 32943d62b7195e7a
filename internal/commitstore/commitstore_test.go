package commitstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oid builds a distinct well-formed 40-hex id from a single byte seed.
func oid(seed byte) string {
	return strings.Repeat(fmt.Sprintf("%02x", seed), 20)
}

// rawCommit assembles the field-delimited record ReadCommit produces.
func rawCommit(id string, parents []string, subject, body string) []byte {
	fields := []string{
		id,
		oid(0xee), // tree
		strings.Join(parents, " "),
		"Alice", "alice@example.com", "2026-08-20T10:00:00+00:00",
		"Alice", "alice@example.com", "2026-08-20T10:00:00+00:00",
		subject,
		body,
	}
	return []byte(strings.Join(fields, contract.CommitFieldSep) + "\n")
}

// expectRead programs one ReadCommit round-trip on the mock.
func expectRead(m *contract.MockGitClient, ctx context.Context, id string, parents ...string) {
	m.On("ReadCommit", ctx, "/repo", id).
		Return(rawCommit(id, parents, "commit "+schema.ShortID(id), ""), nil).
		Once()
}

func sorted(ids ...string) []string {
	out := append([]string{}, ids...)
	sort.Strings(out)
	return out
}

func TestGetCommitParsesAndCaches(t *testing.T) {
	ctx := context.Background()
	id := oid(0x01)
	parent := oid(0x02)

	mockClient := new(contract.MockGitClient)
	mockClient.On("ReadCommit", ctx, "/repo", id).
		Return(rawCommit(id, []string{parent}, "fix the widget", "Longer explanation.\n"), nil).
		Once()

	sess := session.New("/repo", mockClient)

	commit, err := GetCommit(ctx, sess, id)
	require.NoError(t, err)
	assert.Equal(t, id, commit.ID)
	assert.Equal(t, []string{parent}, commit.Parents)
	assert.Equal(t, "Alice", commit.Author.Name)
	assert.Equal(t, "alice@example.com", commit.Committer.Email)
	assert.Equal(t, "fix the widget", commit.Subject)
	assert.Equal(t, "Longer explanation.", commit.Body)
	assert.False(t, commit.IsMerge())
	assert.False(t, commit.IsRoot())

	// Second fetch is a cache hit; the mock would fail on a second call.
	again, err := GetCommit(ctx, sess, id)
	require.NoError(t, err)
	assert.Same(t, commit, again)
	mockClient.AssertExpectations(t)
}

func TestGetCommitRootAndMerge(t *testing.T) {
	ctx := context.Background()
	root := oid(0x03)
	merge := oid(0x04)

	mockClient := new(contract.MockGitClient)
	expectRead(mockClient, ctx, root)
	expectRead(mockClient, ctx, merge, oid(0x05), oid(0x06))

	sess := session.New("/repo", mockClient)

	c, err := GetCommit(ctx, sess, root)
	require.NoError(t, err)
	assert.True(t, c.IsRoot())

	c, err = GetCommit(ctx, sess, merge)
	require.NoError(t, err)
	assert.True(t, c.IsMerge())
	assert.Len(t, c.Parents, 2)
}

func TestGetCommitWrapsFailure(t *testing.T) {
	ctx := context.Background()
	mockClient := new(contract.MockGitClient)
	mockClient.On("ReadCommit", ctx, "/repo", oid(0x07)).
		Return([]byte(nil), errors.New("bad object")).
		Once()

	_, err := GetCommit(ctx, session.New("/repo", mockClient), oid(0x07))
	assert.True(t, errors.Is(err, schema.ErrRetrieval))
}

func TestGetCommitsDeletionIsEmpty(t *testing.T) {
	ctx := context.Background()
	// No repository queries at all for a deletion.
	sess := session.New("/repo", new(contract.MockGitClient))

	commits, err := GetCommits(ctx, sess, oid(0x10), schema.NullID)
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestGetCommitsBranchCreation(t *testing.T) {
	// refs/heads/feature is created at C3 with history C1->C2->C3; only
	// refs/heads/main exists, pointing elsewhere. The result is every
	// commit reachable from C3 not reachable from main, newest first.
	ctx := context.Background()
	c1, c2, c3 := oid(0x11), oid(0x12), oid(0x13)
	mainTip := oid(0x1f)

	mockClient := new(contract.MockGitClient)
	mockClient.On("ListRefs", ctx, "/repo").
		Return(map[string]string{"refs/heads/main": mainTip}, nil).
		Once()
	mockClient.On("RevList", ctx, "/repo", []string{c3}, sorted(mainTip)).
		Return([]string{c3, c2, c1}, nil).
		Once()
	expectRead(mockClient, ctx, c3, c2)
	expectRead(mockClient, ctx, c2, c1)
	expectRead(mockClient, ctx, c1)

	sess := session.New("/repo", mockClient)

	commits, err := GetCommits(ctx, sess, schema.NullID, c3)
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, []string{c3, c2, c1}, []string{commits[0].ID, commits[1].ID, commits[2].ID})
	mockClient.AssertExpectations(t)
}

func TestGetCommitsPostUpdateCorrection(t *testing.T) {
	// refs/heads/main already points at C8 (the hook runs after the ref
	// moved). Naively excluding every ref target would exclude C8 itself;
	// the correction drops C8 from the boundary so the walk from C8 with
	// only C5 excluded yields C8, C7, C6.
	ctx := context.Background()
	c5, c6, c7, c8 := oid(0x25), oid(0x26), oid(0x27), oid(0x28)
	otherTip := oid(0x2f)

	mockClient := new(contract.MockGitClient)
	mockClient.On("ListRefs", ctx, "/repo").
		Return(map[string]string{
			"refs/heads/main":  c8,
			"refs/heads/other": otherTip,
		}, nil).
		Once()
	mockClient.On("RevList", ctx, "/repo", []string{c8}, sorted(c5, otherTip)).
		Return([]string{c8, c7, c6}, nil).
		Once()
	expectRead(mockClient, ctx, c8, c7)
	expectRead(mockClient, ctx, c7, c6)
	expectRead(mockClient, ctx, c6, c5)

	sess := session.New("/repo", mockClient)

	commits, err := GetCommits(ctx, sess, c5, c8)
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, c8, commits[0].ID)
	assert.Equal(t, c6, commits[2].ID)
	mockClient.AssertExpectations(t)
}

func TestGetCommitsPreUpdateKeepsExclusion(t *testing.T) {
	// Two refs point at the new tip, so the single-ref heuristic does not
	// apply and newID stays in the exclusion boundary.
	ctx := context.Background()
	c5, c8 := oid(0x35), oid(0x38)

	mockClient := new(contract.MockGitClient)
	mockClient.On("ListRefs", ctx, "/repo").
		Return(map[string]string{
			"refs/heads/main":   c8,
			"refs/heads/mirror": c8,
		}, nil).
		Once()
	mockClient.On("RevList", ctx, "/repo", []string{c8}, sorted(c5, c8)).
		Return([]string{}, nil).
		Once()

	sess := session.New("/repo", mockClient)

	commits, err := GetCommits(ctx, sess, c5, c8)
	require.NoError(t, err)
	assert.Empty(t, commits)
	mockClient.AssertExpectations(t)
}

func TestGetCommitsIdempotent(t *testing.T) {
	ctx := context.Background()
	c1, c2 := oid(0x41), oid(0x42)

	mockClient := new(contract.MockGitClient)
	mockClient.On("ListRefs", ctx, "/repo").
		Return(map[string]string{"refs/heads/main": c1}, nil).
		Once()
	mockClient.On("RevList", ctx, "/repo", []string{c2}, sorted(c1)).
		Return([]string{c2}, nil).
		Once()
	expectRead(mockClient, ctx, c2, c1)

	sess := session.New("/repo", mockClient)

	first, err := GetCommits(ctx, sess, c1, c2)
	require.NoError(t, err)
	second, err := GetCommits(ctx, sess, c1, c2)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same identifiers, same order")
	mockClient.AssertExpectations(t) // every query ran exactly once
}

func TestGetCommitsErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c1, c2 := oid(0x51), oid(0x52)
	refs := map[string]string{"refs/heads/main": c1}

	mockClient := new(contract.MockGitClient)
	mockClient.On("ListRefs", ctx, "/repo").Return(refs, nil).Twice()
	mockClient.On("RevList", ctx, "/repo", []string{c2}, sorted(c1)).
		Return([]string(nil), errors.New("object store unavailable")).
		Once()
	mockClient.On("RevList", ctx, "/repo", []string{c2}, sorted(c1)).
		Return([]string{c2}, nil).
		Once()
	expectRead(mockClient, ctx, c2, c1)

	sess := session.New("/repo", mockClient)

	_, err := GetCommits(ctx, sess, c1, c2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrRetrieval))

	// The failure was not cached; a retry resolves normally.
	commits, err := GetCommits(ctx, sess, c1, c2)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, c2, commits[0].ID)
	mockClient.AssertExpectations(t)
}

func TestParseCommitRejectsShortRecord(t *testing.T) {
	_, err := parseCommit([]byte("only\x1fthree\x1ffields"))
	assert.True(t, errors.Is(err, schema.ErrRetrieval))
}
