package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"whoami"},
	Short:   "Test your Nexus API key",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := data.ValidateUser(cmd.Context(), shared.cache)
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(user)
		}
		fmt.Printf("You are logged in as:\n    %s <%s>\n", format.Name(user.Name), user.Email)
		fmt.Printf("    %s\n", format.Link(user.ProfileURL, user.ProfileURL))
		if user.IsPremium {
			fmt.Println("    premium member")
		} else if user.IsSupporter {
			fmt.Println("    supporter")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
