package cmd

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var trackedCmd = &cobra.Command{
	Use:   "tracked [game]",
	Short: "Fetch your list of tracked mods and show a by-game summary",
	Long:  "Fetch your list of tracked mods. With no game named, shows a count\nper game. Name a game to see a detailed list for it.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tracked, err := data.Get(ctx, shared.cache, data.TrackedMods, data.TrackedKey, refreshFlag)
		if err != nil {
			return err
		}
		if tracked == nil {
			return errors.New("unable to fetch any tracked mods")
		}

		if len(args) == 1 {
			return showTrackedForGame(cmd, tracked, args[0])
		}
		if jsonOutput {
			return emitJSON(tracked)
		}

		mapping := tracked.GameMap()
		fmt.Printf("\n%s tracked for %d games\n\n", format.PluralizeMod(len(tracked.Mods)), len(mapping))

		domains := make([]string, 0, len(mapping))
		for domain := range mapping {
			domains = append(domains, domain)
		}
		sort.Strings(domains)
		rows := make([][]string, 0, len(domains))
		for _, domain := range domains {
			rows = append(rows, []string{domain, fmt.Sprintf("%d", len(mapping[domain]))})
		}
		format.Table(cmd.OutOrStdout(), []string{"game", "tracked"}, rows)
		return nil
	},
}

func showTrackedForGame(cmd *cobra.Command, tracked *data.Tracked, domain string) error {
	ctx := cmd.Context()
	refs := tracked.ByGame(domain)
	if jsonOutput {
		return emitJSON(refs)
	}
	if len(refs) == 0 {
		fmt.Printf("No mods tracked for %s\n", format.Name(domain))
		return nil
	}

	fmt.Printf("\n%s tracked for %s:\n\n", format.PluralizeMod(len(refs)), format.Name(domain))
	for _, ref := range refs {
		key := data.CompoundKey{Domain: ref.DomainName, ModID: ref.ModID}.String()
		mod, err := data.Local(ctx, shared.cache, data.Mods, key)
		if err != nil {
			return err
		}
		if mod == nil {
			fmt.Printf("    %s %s\n", format.ID(ref.ModID), format.Muted("(not in cache; run populate)"))
			continue
		}
		printCompact(mod)
	}
	return nil
}

// printCompact shows a one-line summary of a mod, flagging withdrawn ones.
func printCompact(mod *data.ModInfoFull) {
	switch mod.Status {
	case data.StatusHidden:
		fmt.Printf("    %s <%s> %s", format.Name(mod.Name), format.ID(mod.ModID), format.Warn("HIDDEN"))
	case data.StatusNotPublished:
		fmt.Printf("    %s <%s> %s", format.Name(mod.Name), format.ID(mod.ModID), format.Muted("UNPUBLISHED"))
	case data.StatusRemoved:
		fmt.Printf("    ! %s (was id #%s)", format.Warn("REMOVED"), format.ID(mod.ModID))
	case data.StatusWastebinned:
		fmt.Printf("    ! %s (was id #%s)", format.Warn("WASTEBINNED"), format.ID(mod.ModID))
	case data.StatusUnderModeration:
		fmt.Printf("    ! %s (id #%s)", format.Warn("UNDER MODERATION"), format.ID(mod.ModID))
	default:
		fmt.Printf("    %s <%s>", format.Name(mod.Name), format.ID(mod.ModID))
	}
	if mod.Endorsement != nil {
		fmt.Printf(" %s", mod.Endorsement.EndorseStatus.Glyph())
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(trackedCmd)
}
