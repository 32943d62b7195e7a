package outwriter

import (
	"os"

	"github.com/boudekerk/githooks/internal/contract"
	"golang.org/x/term"
)

// GetMaxSubjectWidth calculates the maximum width for commit subjects in
// table output based on terminal width and table configuration.
func GetMaxSubjectWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the short id and author columns plus table borders,
	// separators and padding.
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 72 {
		return 72
	}
	return available
}
