// Package commitstore fetches commit metadata and resolves pushed commit
// ranges, memoizing every repository query through the session cache.
//
// Range resolution subtracts the history of every existing reference, so the
// result of GetCommits is "commits introduced by this update" rather than a
// plain old..new walk. That distinction matters in two places: a branch
// creation has no old endpoint at all, and a hook running after the ref has
// already moved would otherwise see its own new tip in the exclusion
// boundary and resolve an empty range.
package commitstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
)

const (
	commitSection = "commits"
	rangeSection  = "ranges"

	commitFieldCount = 11
)

// GetCommit fetches a single commit's metadata by id, with no history walk.
// Each id is its own cache entry, independent of any range resolution.
func GetCommit(ctx context.Context, sess *session.Session, id string) (*schema.Commit, error) {
	cache := sess.Cache(commitSection)
	if cached, ok := cache[id]; ok {
		return cached.(*schema.Commit), nil
	}

	raw, err := sess.Git.ReadCommit(ctx, sess.RepoPath, id)
	if err != nil {
		return nil, schema.NewRetrievalError("read commit "+schema.ShortID(id), err)
	}
	commit, err := parseCommit(raw)
	if err != nil {
		return nil, err
	}
	cache[id] = commit
	return commit, nil
}

// GetCommits resolves the ordered commit range introduced by moving a
// reference from oldID to newID, newest first. The result is cached under
// the exact (oldID,newID) pair; errors are returned and never cached, so a
// failed resolution for one pair cannot poison another.
//
// The exclusion boundary starts as the target of every existing reference.
// When exactly one reference already points at newID we assume it is the
// reference being processed (the post-update hook phase) and drop newID's
// entry, otherwise everything reachable from it would be excluded and the
// result would always be empty. With several refs landing on the same
// commit in one transaction this heuristic can misclassify; it matches the
// behavior hooks conventionally rely on.
func GetCommits(ctx context.Context, sess *session.Session, oldID, newID string) ([]*schema.Commit, error) {
	cache := sess.Cache(rangeSection)
	key := schema.RangeKey(oldID, newID)
	if cached, ok := cache[key]; ok {
		return cached.([]*schema.Commit), nil
	}

	// Reference deletion: there are no new commits to evaluate.
	if newID == schema.NullID {
		commits := []*schema.Commit{}
		cache[key] = commits
		return commits, nil
	}

	refs, err := sess.Git.ListRefs(ctx, sess.RepoPath)
	if err != nil {
		return nil, schema.NewRetrievalError("list refs", err)
	}

	exclude := make(map[string]bool)
	pointingAtNew := 0
	for _, id := range refs {
		exclude[id] = true
		if id == newID {
			pointingAtNew++
		}
	}

	// Post-update correction: the ref being processed has already moved, so
	// its own tip sits in the boundary. Remove it or the walk finds nothing.
	if pointingAtNew == 1 {
		delete(exclude, newID)
	}

	// Branch creation has no old endpoint; everything not reachable from
	// another existing ref counts as new.
	if oldID != schema.NullID {
		exclude[oldID] = true
	}

	excludeList := make([]string, 0, len(exclude))
	for id := range exclude {
		excludeList = append(excludeList, id)
	}
	sort.Strings(excludeList)

	ids, err := sess.Git.RevList(ctx, sess.RepoPath, []string{newID}, excludeList)
	if err != nil {
		return nil, schema.NewRetrievalError(fmt.Sprintf("rev-list %s", key), err)
	}

	commits := make([]*schema.Commit, 0, len(ids))
	for _, id := range ids {
		commit, err := GetCommit(ctx, sess, id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	cache[key] = commits
	return commits, nil
}

// parseCommit decodes one field-delimited ReadCommit record.
func parseCommit(raw []byte) (*schema.Commit, error) {
	text := strings.TrimSuffix(string(raw), "\n")
	fields := strings.SplitN(text, contract.CommitFieldSep, commitFieldCount)
	if len(fields) != commitFieldCount {
		return nil, schema.NewRetrievalError("parse commit", fmt.Errorf("expected %d fields, got %d", commitFieldCount, len(fields)))
	}

	authorDate, err := time.Parse(time.RFC3339, fields[5])
	if err != nil {
		return nil, schema.NewRetrievalError("parse commit "+schema.ShortID(fields[0]), fmt.Errorf("bad author date %q: %w", fields[5], err))
	}
	committerDate, err := time.Parse(time.RFC3339, fields[8])
	if err != nil {
		return nil, schema.NewRetrievalError("parse commit "+schema.ShortID(fields[0]), fmt.Errorf("bad committer date %q: %w", fields[8], err))
	}

	var parents []string
	if fields[2] != "" {
		parents = strings.Split(fields[2], " ")
	}

	return &schema.Commit{
		ID:      fields[0],
		Tree:    fields[1],
		Parents: parents,
		Author: schema.Identity{
			Name:  fields[3],
			Email: fields[4],
			Date:  authorDate,
		},
		Committer: schema.Identity{
			Name:  fields[6],
			Email: fields[7],
			Date:  committerDate,
		},
		Subject: fields[9],
		Body:    strings.TrimRight(fields[10], "\n"),
	}, nil
}
