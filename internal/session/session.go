// Package session owns the per-invocation state every other component
// memoizes through: named cache sections and the scratch directory for
// staged blob content. One hook invocation constructs exactly one Session
// and discards it at exit.
package session

import (
	"os"
	"sync"

	"github.com/boudekerk/githooks/internal/contract"
)

// Session is the unit of cache validity. It carries the repository path and
// git client so components do not thread them separately, plus the named
// cache sections. Sections are exclusive to the session; the hook process is
// single-threaded, so section contents need no locking once handed out.
type Session struct {
	RepoPath string
	Git      contract.GitClient

	sync.RWMutex // Protects the section map and temp dir slot
	sections     map[string]map[string]any
	tempDir      string
}

// New creates a session for one hook invocation.
func New(repoPath string, client contract.GitClient) *Session {
	return &Session{
		RepoPath: repoPath,
		Git:      client,
		sections: make(map[string]map[string]any),
	}
}

// Cache returns the named section, creating it on first use. The returned
// map is owned by the session and mutated directly by the caller.
func (s *Session) Cache(section string) map[string]any {
	s.RLock()
	m, ok := s.sections[section]
	s.RUnlock()
	if ok {
		return m
	}

	s.Lock()
	defer s.Unlock()
	if m, ok := s.sections[section]; ok {
		return m
	}
	m = make(map[string]any)
	s.sections[section] = m
	return m
}

// Invalidate drops one section. The next Cache call recreates it empty.
func (s *Session) Invalidate(section string) {
	s.Lock()
	defer s.Unlock()
	delete(s.sections, section)
}

// TempDir returns the session's scratch directory, creating it on first use.
// Everything written there is discarded by Close.
func (s *Session) TempDir() (string, error) {
	s.Lock()
	defer s.Unlock()
	if s.tempDir != "" {
		return s.tempDir, nil
	}
	dir, err := os.MkdirTemp("", "githooks-")
	if err != nil {
		return "", err
	}
	s.tempDir = dir
	return dir, nil
}

// Close removes the scratch directory. A session that never requested a
// temp dir closes as a no-op.
func (s *Session) Close() error {
	s.Lock()
	defer s.Unlock()
	if s.tempDir == "" {
		return nil
	}
	dir := s.tempDir
	s.tempDir = ""
	return os.RemoveAll(dir)
}
