// Package repoconfig models the repository's own configuration as a
// two-level multi-valued mapping: section -> key -> ordered values. Values
// for a repeated key append in order of appearance and are never collapsed;
// callers wanting "last value wins" pick the final element via GetLast.
package repoconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
)

const (
	cacheSection = "repoconfig"
	cacheKey     = "store"
)

// Store is the parsed two-level config mapping. Section and key lookups are
// case-insensitive (both are lower-cased at parse time).
type Store struct {
	sections map[string]map[string][]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sections: make(map[string]map[string][]string)}
}

// Load fetches and parses the repository configuration, memoized per
// session: the git query runs at most once for the session's lifetime.
func Load(ctx context.Context, sess *session.Session) (*Store, error) {
	cache := sess.Cache(cacheSection)
	if cached, ok := cache[cacheKey]; ok {
		return cached.(*Store), nil
	}

	raw, err := sess.Git.ListConfig(ctx, sess.RepoPath)
	if err != nil {
		return nil, schema.NewRetrievalError("config --list", err)
	}
	store, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	cache[cacheKey] = store
	return store, nil
}

// Parse reads NUL-delimited "name\nvalue" records as produced by
// 'git config -z --list'. A record without a newline is a valueless boolean
// shorthand and yields an empty value. A name without a dot is malformed.
func Parse(raw []byte) (*Store, error) {
	store := NewStore()
	for _, record := range strings.Split(string(raw), "\x00") {
		if record == "" {
			continue
		}
		name, value, _ := strings.Cut(record, "\n")
		if err := store.add(name, value); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// ParseLines reads LF-delimited "name=value" text, the inline equivalent of
// the NUL-record form. Used by consumers that carry config in files or test
// fixtures rather than the repository.
func ParseLines(text string) (*Store, error) {
	store := NewStore()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, _ := strings.Cut(line, "=")
		if err := store.add(name, value); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *Store) add(name, value string) error {
	section, key, err := schema.SplitConfigName(name)
	if err != nil {
		return err
	}
	s.Add(section, key, value)
	return nil
}

// Add appends a value for section.key. Consumers use this to inject
// defaults after the initial load; appended values land at the end of the
// list, making them the "last wins" choice.
func (s *Store) Add(section, key, value string) {
	section = strings.ToLower(section)
	key = strings.ToLower(key)
	keys, ok := s.sections[section]
	if !ok {
		keys = make(map[string][]string)
		s.sections[section] = keys
	}
	keys[key] = append(keys[key], value)
}

// Get returns the key->values mapping of one section, or an empty map when
// the section is absent. The returned map is the store's own; callers treat
// it as read-only.
func (s *Store) Get(section string) map[string][]string {
	keys, ok := s.sections[strings.ToLower(section)]
	if !ok {
		return map[string][]string{}
	}
	return keys
}

// GetAll returns every value recorded for section.key in order of
// appearance. Absent keys read as an empty list, not an error.
func (s *Store) GetAll(section, key string) []string {
	return s.Get(section)[strings.ToLower(key)]
}

// GetLast returns the most specific (last) value for section.key.
func (s *Store) GetLast(section, key string) (string, bool) {
	values := s.GetAll(section, key)
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

// Sections returns the section names currently in the store.
func (s *Store) Sections() []string {
	names := make([]string, 0, len(s.sections))
	for name := range s.sections {
		names = append(names, name)
	}
	return names
}

// String summarizes the store for diagnostics.
func (s *Store) String() string {
	total := 0
	for _, keys := range s.sections {
		for _, values := range keys {
			total += len(values)
		}
	}
	return fmt.Sprintf("repoconfig: %d sections, %d values", len(s.sections), total)
}
