// Package errsink accumulates the formatted error records policy consumers
// emit while a hook runs. Recording never fails and never stops the caller;
// whether accumulated records fail the hook is the consumer's decision.
package errsink

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var prefixColor = color.New(color.FgRed, color.Bold)

// Sink is a process-wide ordered log of error records.
type Sink struct {
	records []string
}

// New returns an empty sink.
func New() *Sink {
	return &Sink{}
}

// Record appends one "[prefix] message" record.
func (s *Sink) Record(prefix, message string) {
	s.records = append(s.records, fmt.Sprintf("[%s] %s", prefix, message))
}

// Recordf appends one record with a formatted message.
func (s *Sink) Recordf(prefix, format string, args ...any) {
	s.Record(prefix, fmt.Sprintf(format, args...))
}

// RecordDetails appends a record followed by a blank line and an indented
// details block.
func (s *Sink) RecordDetails(prefix, message, details string) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", prefix, message)
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(details, "\n"), "\n") {
		b.WriteString("    " + line + "\n")
	}
	s.records = append(s.records, strings.TrimRight(b.String(), "\n"))
}

// Len returns the number of records accumulated so far.
func (s *Sink) Len() int {
	return len(s.records)
}

// Drain returns the records in insertion order. The sink is not cleared;
// it lives exactly one process, so a destructive read buys nothing.
func (s *Sink) Drain() []string {
	out := make([]string, len(s.records))
	copy(out, s.records)
	return out
}

// Render writes every record to w, one per line, coloring the [prefix] tag
// when colored is set.
func (s *Sink) Render(w io.Writer, colored bool) {
	for _, record := range s.records {
		if colored {
			if end := strings.Index(record, "]"); strings.HasPrefix(record, "[") && end > 0 {
				record = prefixColor.Sprint(record[:end+1]) + record[end+1:]
			}
		}
		fmt.Fprintln(w, record)
	}
}
