package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupsMember string

// groupsCmd loads the configured group specs and answers membership
// queries, exercising the same resolution path the checks use.
var groupsCmd = &cobra.Command{
	Use:     "groups <group>",
	Short:   "Query group membership from the configured group specs.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		env, err := buildPolicyEnv(rootCtx)
		if err != nil {
			return err
		}
		group := args[0]

		if groupsMember != "" {
			ok, err := env.Groups.IsMember(groupsMember, group)
			if err != nil {
				return err
			}
			fmt.Printf("%s in %s: %v\n", groupsMember, group, ok)
			return nil
		}

		if !env.Groups.Defined(group) {
			return fmt.Errorf("group %q is not defined", group)
		}
		fmt.Printf("group %q is defined\n", group)
		return nil
	},
}

func init() {
	groupsCmd.Flags().StringVar(&groupsMember, "member", "", "test whether this user is a member")
}
