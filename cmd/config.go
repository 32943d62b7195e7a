package cmd

import (
	"fmt"
	"sort"

	"github.com/boudekerk/githooks/internal/repoconfig"
	"github.com/spf13/cobra"
)

// configCmd dumps the repository configuration as the runtime sees it: the
// two-level multi-valued mapping, every value in order of appearance.
var configCmd = &cobra.Command{
	Use:     "config [section]",
	Short:   "Show the repository configuration the hooks read.",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := repoconfig.Load(rootCtx, sess)
		if err != nil {
			return err
		}

		sections := store.Sections()
		if len(args) == 1 {
			sections = []string{args[0]}
		}
		sort.Strings(sections)

		for _, section := range sections {
			keys := store.Get(section)
			names := make([]string, 0, len(keys))
			for name := range keys {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, value := range keys[name] {
					fmt.Printf("%s.%s=%s\n", section, name, value)
				}
			}
		}
		return nil
	},
}
