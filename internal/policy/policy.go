// Package policy is the registration surface for the checks hook consumers
// plug in. The runtime supplies the environment (session, config, groups,
// sink) and iterates commits; the predicates themselves live with the
// consumer. Checks report through the error sink and return a verdict;
// recording is always non-fatal, so one failing check never stops the rest.
package policy

import (
	"context"

	"github.com/boudekerk/githooks/internal/errsink"
	"github.com/boudekerk/githooks/internal/groups"
	"github.com/boudekerk/githooks/internal/repoconfig"
	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
)

// Env carries everything a check may consult.
type Env struct {
	Sess   *session.Session
	Config *repoconfig.Store
	Groups *groups.Resolver
	Sink   *errsink.Sink
}

// Check inspects one commit on one ref and returns false to veto it.
// Findings go through env.Sink.
type Check func(ctx context.Context, env *Env, commit *schema.Commit, ref string) bool

type namedCheck struct {
	name  string
	check Check
}

// Registry holds registered checks in registration order.
type Registry struct {
	checks []namedCheck
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named check. Order of registration is order of execution.
func (r *Registry) Register(name string, check Check) {
	r.checks = append(r.checks, namedCheck{name: name, check: check})
}

// Names returns the registered check names in execution order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.checks))
	for i, c := range r.checks {
		names[i] = c.name
	}
	return names
}

// RunAll runs every check against the commit and returns the aggregate
// verdict. Every check runs even after a veto, so the sink collects the
// complete picture for the push client.
func (r *Registry) RunAll(ctx context.Context, env *Env, commit *schema.Commit, ref string) bool {
	ok := true
	for _, c := range r.checks {
		if !c.check(ctx, env, commit, ref) {
			ok = false
		}
	}
	return ok
}
