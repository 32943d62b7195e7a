package policy

import (
	"context"
	"testing"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/errsink"
	"github.com/boudekerk/githooks/internal/groups"
	"github.com/boudekerk/githooks/internal/repoconfig"
	"github.com/boudekerk/githooks/internal/session"
	"github.com/boudekerk/githooks/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() *Env {
	return &Env{
		Sess:   session.New("/repo", new(contract.MockGitClient)),
		Config: repoconfig.NewStore(),
		Groups: groups.NewResolver(),
		Sink:   errsink.New(),
	}
}

func TestRunAllAggregatesVerdicts(t *testing.T) {
	reg := NewRegistry()
	var order []string

	reg.Register("pass", func(_ context.Context, _ *Env, _ *schema.Commit, _ string) bool {
		order = append(order, "pass")
		return true
	})
	reg.Register("veto", func(_ context.Context, env *Env, c *schema.Commit, ref string) bool {
		order = append(order, "veto")
		env.Sink.Recordf("veto", "%s rejected on %s", c.ShortID(), ref)
		return false
	})
	reg.Register("after", func(_ context.Context, _ *Env, _ *schema.Commit, _ string) bool {
		order = append(order, "after")
		return true
	})

	env := testEnv()
	commit := &schema.Commit{ID: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"}

	ok := reg.RunAll(context.Background(), env, commit, "refs/heads/main")
	assert.False(t, ok, "one veto fails the aggregate")
	assert.Equal(t, []string{"pass", "veto", "after"}, order, "a veto does not stop later checks")
	assert.Equal(t, 1, env.Sink.Len())
	assert.Contains(t, env.Sink.Drain()[0], "a1b2c3d4e5")
}

func TestRunAllEmptyRegistryPasses(t *testing.T) {
	reg := NewRegistry()
	ok := reg.RunAll(context.Background(), testEnv(), &schema.Commit{}, "refs/heads/main")
	assert.True(t, ok)
}

func TestChecksSeeTheEnvironment(t *testing.T) {
	env := testEnv()
	env.Config.Add("hooks", "admin-group", "admins")
	require.NoError(t, env.Groups.LoadString("inline", "admins = alice\n"))

	reg := NewRegistry()
	reg.Register("admin-only", func(_ context.Context, env *Env, c *schema.Commit, _ string) bool {
		group, _ := env.Config.GetLast("hooks", "admin-group")
		ok, err := env.Groups.IsMember(c.Author.Email, group)
		if err != nil || !ok {
			env.Sink.Record("admin-only", "author is not an admin")
			return false
		}
		return true
	})

	admin := &schema.Commit{Author: schema.Identity{Email: "alice"}}
	assert.True(t, reg.RunAll(context.Background(), env, admin, "refs/heads/main"))

	outsider := &schema.Commit{Author: schema.Identity{Email: "mallory"}}
	assert.False(t, reg.RunAll(context.Background(), env, outsider, "refs/heads/main"))

	assert.Equal(t, []string{"admin-only"}, reg.Names())
}
