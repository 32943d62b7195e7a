// Package groups resolves the access-control group specs hooks evaluate
// user authorization against. Specs are ordered lines of
//
//	groupname = member member ...
//
// where a member token starting with '@' references a group defined earlier
// (forward references fail), '#' starts a comment and blank lines are
// skipped. Groups are append-once: redefining a name fails.
package groups

import (
	"fmt"
	"os"
	"strings"

	"github.com/boudekerk/githooks/schema"
)

// Member is one entry of a group: a literal user identifier or a reference
// to another group.
type Member struct {
	Name    string
	IsGroup bool
}

// Resolver holds every group loaded this session and answers membership
// queries recursively.
type Resolver struct {
	groups map[string][]Member
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{groups: make(map[string][]Member)}
}

// LoadString parses one spec source. source names the origin (a file path
// or label) for error messages. Sources load in call order; a nested
// reference is valid only if its target was defined by an earlier line of
// any source processed so far.
func (r *Resolver) LoadString(source, text string) error {
	for lineNo, line := range strings.Split(text, "\n") {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, members, ok := strings.Cut(line, "=")
		if !ok {
			return schema.NewParseError(fmt.Sprintf("%s:%d: expected 'group = members', got %q", source, lineNo+1, line))
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return schema.NewParseError(fmt.Sprintf("%s:%d: empty group name", source, lineNo+1))
		}
		if _, exists := r.groups[name]; exists {
			return schema.NewConfigError(fmt.Sprintf("%s:%d: group %q already defined", source, lineNo+1, name))
		}

		var parsed []Member
		for _, token := range strings.Fields(members) {
			if token[0] == schema.GroupMemberPrefix {
				nested := token[1:]
				if _, defined := r.groups[nested]; !defined {
					return schema.NewConfigError(fmt.Sprintf("%s:%d: group %q references undefined group %q", source, lineNo+1, name, nested))
				}
				parsed = append(parsed, Member{Name: nested, IsGroup: true})
			} else {
				parsed = append(parsed, Member{Name: token})
			}
		}
		r.groups[name] = parsed
	}
	return nil
}

// Define registers a group programmatically. Unlike the line parser it does
// not validate nested references, so consumers injecting groups can build
// graphs the spec grammar would reject, including cycles; membership queries
// stay cycle-safe regardless. Redefinition still fails.
func (r *Resolver) Define(name string, members ...Member) error {
	if _, exists := r.groups[name]; exists {
		return schema.NewConfigError(fmt.Sprintf("group %q already defined", name))
	}
	r.groups[name] = members
	return nil
}

// LoadFile reads and parses a spec file.
func (r *Resolver) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.NewConfigError(fmt.Sprintf("cannot read group spec %q: %v", path, err))
	}
	return r.LoadString(path, string(data))
}

// Defined reports whether a group name is loaded.
func (r *Resolver) Defined(group string) bool {
	_, ok := r.groups[group]
	return ok
}

// IsMember reports whether user is a direct or transitive member of group.
// Querying an unknown group is an error; an undefined nested reference
// reached mid-walk (possible only via Define) simply contributes no match.
func (r *Resolver) IsMember(user, group string) (bool, error) {
	if !r.Defined(group) {
		return false, schema.NewUndefinedGroupError(group)
	}
	return r.isMember(user, group, make(map[string]bool)), nil
}

// isMember walks the membership graph. The visited set makes cyclic specs
// terminate: revisiting a group is never a new match, which leaves acyclic
// outcomes unchanged.
func (r *Resolver) isMember(user, group string, visited map[string]bool) bool {
	if visited[group] {
		return false
	}
	visited[group] = true

	for _, m := range r.groups[group] {
		if !m.IsGroup {
			if m.Name == user {
				return true
			}
			continue
		}
		if r.isMember(user, m.Name, visited) {
			return true
		}
	}
	return false
}
