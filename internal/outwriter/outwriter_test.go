package outwriter

import (
	"strings"
	"testing"
	"time"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/errsink"
	"github.com/boudekerk/githooks/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRefSummary(t *testing.T) {
	rows := []RefRow{
		{
			Ref:     "refs/heads/feature",
			Kind:    "create",
			OldID:   schema.NullID,
			NewID:   "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2",
			Commits: 3,
		},
		{
			Ref:   "refs/heads/broken",
			Kind:  "update",
			OldID: strings.Repeat("b", 40),
			NewID: strings.Repeat("c", 40),
			Err:   "rev-list failed",
		},
	}

	var b strings.Builder
	require.NoError(t, PrintRefSummary(&b, rows))
	out := b.String()

	assert.Contains(t, out, "refs/heads/feature")
	assert.Contains(t, out, "create")
	assert.Contains(t, out, "(none)", "null old id renders as the sentinel label")
	assert.Contains(t, out, "a1b2c3d4e5")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "error: rev-list failed")
}

func TestPrintCommits(t *testing.T) {
	commits := []*schema.Commit{
		{
			ID:      "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2",
			Author:  schema.Identity{Name: "Alice", Email: "alice@example.com", Date: time.Now()},
			Subject: "fix the widget",
		},
	}

	var b strings.Builder
	cfg := &contract.Config{Width: 120}
	require.NoError(t, PrintCommits(&b, commits, cfg))
	out := b.String()

	assert.Contains(t, out, "a1b2c3d4e5")
	assert.Contains(t, out, "Alice <alice@example.com>")
	assert.Contains(t, out, "fix the widget")
}

func TestPrintSinkPlainWhenNotTerminal(t *testing.T) {
	sink := errsink.New()
	sink.Record("policy", "bad commit")

	var b strings.Builder
	PrintSink(&b, sink, &contract.Config{Color: "auto"})
	assert.Equal(t, "[policy] bad commit\n", b.String(), "auto mode stays plain off-terminal")
}

func TestUseColorModes(t *testing.T) {
	var b strings.Builder
	assert.True(t, UseColor(&contract.Config{Color: "always"}, &b))
	assert.False(t, UseColor(&contract.Config{Color: "never"}, &b))
	assert.False(t, UseColor(&contract.Config{Color: "auto"}, &b), "non-file writers never color in auto mode")
}

func TestGetMaxSubjectWidth(t *testing.T) {
	assert.Equal(t, 70, GetMaxSubjectWidth(&contract.Config{Width: 120}))
	assert.Equal(t, 15, GetMaxSubjectWidth(&contract.Config{Width: 40}), "narrow terminals keep a minimum")
	assert.Equal(t, 72, GetMaxSubjectWidth(&contract.Config{Width: 500}), "wide terminals are capped")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very ...", truncate("a very long subject line", 10))
}
