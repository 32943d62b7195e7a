// Package schema has the shared value types, sentinel ids and error taxonomy
// for all parts of githooks.
package schema

import (
	"fmt"
	"strings"
	"time"
)

// Identity is one side of a commit signature (author or committer).
type Identity struct {
	Name  string    // Human-readable name as recorded in the commit
	Email string    // Email address as recorded in the commit
	Date  time.Time // Signature timestamp
}

// String renders the identity in the canonical "Name <email>" form.
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Commit holds the full metadata of a single commit. A Commit is immutable
// once fetched; the commit store keys it by ID and never mutates it.
type Commit struct {
	ID        string   // 40-character hex object id
	Tree      string   // Tree object id
	Parents   []string // Parent ids in recorded order; empty for a root commit
	Author    Identity
	Committer Identity
	Subject   string // First line of the commit message
	Body      string // Remainder of the message, may be empty
}

// ShortID returns the abbreviated id used in human-readable output.
func (c *Commit) ShortID() string {
	return ShortID(c.ID)
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// RefUpdate is one affected reference: a ref name plus the old/new commit id
// pair the hook was invoked with. Created once per affected reference per
// invocation and immutable afterwards.
type RefUpdate struct {
	RefName string
	OldID   string
	NewID   string
}

// IsCreate reports whether the update creates the reference.
func (u RefUpdate) IsCreate() bool {
	return u.OldID == NullID
}

// IsDelete reports whether the update deletes the reference.
func (u RefUpdate) IsDelete() bool {
	return u.NewID == NullID
}

// Kind returns a short label for the update ("create", "delete" or "update").
func (u RefUpdate) Kind() string {
	switch {
	case u.IsCreate():
		return "create"
	case u.IsDelete():
		return "delete"
	default:
		return "update"
	}
}

// RangeKey returns the cache key identifying the (old,new) pair.
func (u RefUpdate) RangeKey() string {
	return RangeKey(u.OldID, u.NewID)
}

// RangeKey builds the cache key for an (old,new) commit id pair.
func RangeKey(oldID, newID string) string {
	return oldID + ".." + newID
}

// ShortID abbreviates a commit id for display. Sentinel and malformed ids
// pass through unchanged.
func ShortID(id string) string {
	if id == NullID {
		return "(none)"
	}
	if len(id) < shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// IsValidID reports whether s is a syntactically valid commit id: the null
// sentinel or exactly 40 lower-case hex characters.
func IsValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// SplitConfigName splits a "section.key" config name on its last dot, so
// "a.b.c" yields section "a.b" and key "c". Section and key are lower-cased.
// A name without a dot is malformed.
func SplitConfigName(name string) (section, key string, err error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", "", NewParseError(fmt.Sprintf("config name %q has no section", name))
	}
	return strings.ToLower(name[:idx]), strings.ToLower(name[idx+1:]), nil
}
