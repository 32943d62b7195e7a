package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/boudekerk/githooks/schema"
)

// Default values for configuration.
const (
	DefaultColor = "auto"
)

// Config holds the validated runtime configuration for one hook invocation.
type Config struct {
	RepoPath   string   // Absolute path to the repository (worktree root or bare git dir)
	GroupFiles []string // Group spec files to load, in order
	Color      string   // "auto", "always" or "never"
	Width      int      // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args / environment, so no tag
	RepoPathStr string

	GroupFilesStr string `mapstructure:"groups"`
	Color         string `mapstructure:"color"`
	Width         int    `mapstructure:"width"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. It resolves the repository root
// through the git client, falling back to the bare git dir when there is no
// worktree (the usual case for server-side hooks).
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// --- 1. Color Validation ---
	color := strings.ToLower(input.Color)
	if color == "" {
		color = DefaultColor
	}
	switch color {
	case "auto", "always", "never":
		cfg.Color = color
	default:
		return fmt.Errorf("invalid color mode %q. must be auto, always, never", input.Color)
	}

	// --- 2. Width Validation ---
	if input.Width < 0 {
		return fmt.Errorf("width must be zero or positive (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 3. Group File Processing ---
	cfg.GroupFiles = nil
	if input.GroupFilesStr != "" {
		for _, p := range strings.Split(input.GroupFilesStr, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.GroupFiles = append(cfg.GroupFiles, trimmed)
			}
		}
	}

	// --- 4. Repository Path Resolution ---
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	rootOut, err := client.Run(ctx, searchPath, "rev-parse", "--show-toplevel")
	if err != nil {
		// Bare repositories have no toplevel; resolve the git dir instead.
		rootOut, err = client.Run(ctx, searchPath, "rev-parse", "--absolute-git-dir")
		if err != nil {
			return fmt.Errorf("failed to resolve repository from %q: %w", searchPath, err)
		}
	}
	cfg.RepoPath = strings.TrimSpace(string(rootOut))

	return nil
}

// ValidateRefUpdate checks the shape of one hook input triplet: a non-empty
// ref name plus two syntactically valid commit ids.
func ValidateRefUpdate(ref, oldID, newID string) error {
	if ref == "" {
		return schema.NewParseError("empty ref name in hook input")
	}
	if !schema.IsValidID(oldID) {
		return schema.NewParseError(fmt.Sprintf("malformed old id %q for ref %q", oldID, ref))
	}
	if !schema.IsValidID(newID) {
		return schema.NewParseError(fmt.Sprintf("malformed new id %q for ref %q", newID, ref))
	}
	return nil
}
