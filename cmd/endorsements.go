package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var (
	endorseGame string
	abstainGame string
)

var endorsementsCmd = &cobra.Command{
	Use:   "endorsements [game]",
	Short: "Fetch the list of mods you have endorsed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		opinions, err := data.Get(ctx, shared.cache, data.Endorsements, data.EndorsementsKey, refreshFlag)
		if err != nil {
			return err
		}
		if opinions == nil {
			fmt.Println("No endorsements found.")
			return nil
		}

		if len(args) == 1 {
			filtered := opinions.ByGame(args[0])
			if jsonOutput {
				return emitJSON(filtered)
			}
			fmt.Printf("\n%s opinionated upon for %s:\n\n",
				format.PluralizeMod(len(filtered)), format.Name(args[0]))
			for _, opinion := range filtered {
				printOpinion(opinion)
			}
			return nil
		}

		if jsonOutput {
			return emitJSON(opinions)
		}
		mapping := opinions.GameMap()
		fmt.Printf("\n%s opinionated upon for %d games\n\n",
			format.PluralizeMod(len(opinions.Mods)), len(mapping))
		domains := make([]string, 0, len(mapping))
		for domain := range mapping {
			domains = append(domains, domain)
		}
		sort.Strings(domains)
		for _, domain := range domains {
			fmt.Printf("%s\n", format.Header(domain))
			for _, opinion := range mapping[domain] {
				printOpinion(opinion)
			}
			fmt.Println()
		}
		return nil
	},
}

func printOpinion(opinion data.UserEndorsement) {
	url := fmt.Sprintf("https://www.nexusmods.com/%s/mods/%d", opinion.DomainName, opinion.ModID)
	fmt.Printf("    %s %s\n", opinion.Status.Glyph(), format.Link(url, url))
}

var endorseCmd = &cobra.Command{
	Use:   "endorse <id>...",
	Short: "Endorse a mod or list of mods",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		for i := range args {
			modID, err := modIDArg(args, i)
			if err != nil {
				return err
			}
			version := cachedVersion(cmd, endorseGame, modID)
			resp, err := shared.cache.Nexus.Endorse(ctx, endorseGame, modID, version)
			if err != nil {
				fmt.Printf("error endorsing %s: %s\n", format.ID(modID), err)
				continue
			}
			fmt.Printf("%s: %s\n", format.ID(modID), resp.Status)
		}
		return nil
	},
}

var abstainCmd = &cobra.Command{
	Use:   "abstain <id>",
	Short: "Abstain from endorsing a mod",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		version := cachedVersion(cmd, abstainGame, modID)
		resp, err := shared.cache.Nexus.Abstain(cmd.Context(), abstainGame, modID, version)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", format.ID(modID), resp.Status)
		return nil
	},
}

// cachedVersion digs a mod version out of the cache for the endorsement
// endpoints, which want one. An empty version is accepted by the Nexus.
func cachedVersion(cmd *cobra.Command, domain string, modID int64) string {
	key := data.CompoundKey{Domain: domain, ModID: modID}.String()
	mod, err := data.Local(cmd.Context(), shared.cache, data.Mods, key)
	if err != nil || mod == nil {
		return ""
	}
	return mod.Version
}

func init() {
	endorseCmd.Flags().StringVarP(&endorseGame, "game", "g", DefaultGame,
		"which game the mods belong to; Nexus short name")
	abstainCmd.Flags().StringVarP(&abstainGame, "game", "g", DefaultGame,
		"which game the mod belongs to; Nexus short name")
	rootCmd.AddCommand(endorsementsCmd)
	rootCmd.AddCommand(endorseCmd)
	rootCmd.AddCommand(abstainCmd)
}
