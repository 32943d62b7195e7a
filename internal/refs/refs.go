// Package refs tracks which references the current operation touched and
// resolves each into its commit range on demand. A ref moves from
// unrecorded to recorded via Record, and to resolved on first access of its
// commits; re-recording overwrites the stored pair and drops the stale
// resolution.
package refs

import (
	"context"
	"sort"

	"github.com/boudekerk/githooks/internal/commitstore"
	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
)

const (
	updateSection = "affected-refs"
	idsSection    = "affected-ref-ids"
)

// Tracker records affected references for one session.
type Tracker struct {
	sess *session.Session
}

// NewTracker binds a tracker to the session.
func NewTracker(sess *session.Session) *Tracker {
	return &Tracker{sess: sess}
}

// Record stores the (old,new) pair for a ref. Last write wins: recording a
// ref again replaces its pair and invalidates the derived id-list view.
func (t *Tracker) Record(ref, oldID, newID string) {
	t.sess.Cache(updateSection)[ref] = schema.RefUpdate{RefName: ref, OldID: oldID, NewID: newID}
	delete(t.sess.Cache(idsSection), ref)
}

// Refs returns the recorded ref names, sorted for deterministic iteration.
func (t *Tracker) Refs() []string {
	cache := t.sess.Cache(updateSection)
	names := make([]string, 0, len(cache))
	for name := range cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Range returns the recorded pair for a ref.
func (t *Tracker) Range(ref string) (schema.RefUpdate, error) {
	cached, ok := t.sess.Cache(updateSection)[ref]
	if !ok {
		return schema.RefUpdate{}, schema.NewNotFoundError(ref)
	}
	return cached.(schema.RefUpdate), nil
}

// Commits resolves the ref's commit range, newest first, delegating to the
// commit store (and therefore to its per-pair cache).
func (t *Tracker) Commits(ctx context.Context, ref string) ([]*schema.Commit, error) {
	update, err := t.Range(ref)
	if err != nil {
		return nil, err
	}
	return commitstore.GetCommits(ctx, t.sess, update.OldID, update.NewID)
}

// CommitIDs returns the id-list view of the ref's range. The derived list
// is cached per ref so repeated queries do no new work.
func (t *Tracker) CommitIDs(ctx context.Context, ref string) ([]string, error) {
	cache := t.sess.Cache(idsSection)
	if cached, ok := cache[ref]; ok {
		return cached.([]string), nil
	}

	commits, err := t.Commits(ctx, ref)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(commits))
	for i, c := range commits {
		ids[i] = c.ID
	}
	cache[ref] = ids
	return ids, nil
}
