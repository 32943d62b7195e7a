// Package outwriter has output and writer logic for the CLI surface:
// affected-ref summaries, commit listings and the accumulated error sink.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/errsink"
	"github.com/boudekerk/githooks/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// RefRow is one line of the affected-ref summary.
type RefRow struct {
	Ref     string
	Kind    string
	OldID   string
	NewID   string
	Commits int
	Err     string // resolution failure, empty on success
}

// PrintRefSummary renders the affected refs as a table.
func PrintRefSummary(w io.Writer, rows []RefRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Ref", "Kind", "Old", "New", "Commits"})

	var data [][]string
	for _, r := range rows {
		commits := fmt.Sprintf("%d", r.Commits)
		if r.Err != "" {
			commits = "error: " + r.Err
		}
		data = append(data, []string{
			r.Ref,
			r.Kind,
			schema.ShortID(r.OldID),
			schema.ShortID(r.NewID),
			commits,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintCommits renders a commit range, newest first, truncating subjects to
// the available terminal width.
func PrintCommits(w io.Writer, commits []*schema.Commit, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Commit", "Author", "Subject"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxSubject := GetMaxSubjectWidth(cfg)
	var data [][]string
	for _, c := range commits {
		data = append(data, []string{
			c.ShortID(),
			c.Author.String(),
			truncate(c.Subject, maxSubject),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintSink renders the accumulated error records, colored per the config.
func PrintSink(w io.Writer, sink *errsink.Sink, cfg *contract.Config) {
	sink.Render(w, UseColor(cfg, w))
}

// UseColor decides whether output to w gets ANSI color. "auto" colors only
// real terminals, which keeps hook output clean for push clients.
func UseColor(cfg *contract.Config, w io.Writer) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
