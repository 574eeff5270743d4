package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

// showWithdrawn is shared by the hidden/removed/wastebinned commands:
// they differ only in which status they filter for and whether the
// tracking list narrows the results.
func showWithdrawn(ctx context.Context, domain string, status data.ModStatus, onlyTracked bool) error {
	game, err := gameMetadata(ctx, shared, domain)
	if err != nil {
		return err
	}

	var mods []*data.ModInfoFull
	switch status {
	case data.StatusHidden:
		mods, err = data.HiddenMods(ctx, shared.cache, domain)
	case data.StatusRemoved:
		mods, err = data.RemovedMods(ctx, shared.cache, domain)
	default:
		mods, err = data.WastebinnedMods(ctx, shared.cache, domain)
	}
	if err != nil {
		return err
	}

	if onlyTracked {
		tracked, err := data.Get(ctx, shared.cache, data.TrackedMods, data.TrackedKey, refreshFlag)
		if err != nil {
			return err
		}
		if tracked != nil {
			trackedIDs := make(map[int64]bool)
			for _, ref := range tracked.ByGame(domain) {
				trackedIDs[ref.ModID] = true
			}
			kept := mods[:0]
			for _, m := range mods {
				if trackedIDs[m.ModID] {
					kept = append(kept, m)
				}
			}
			mods = kept
		}
	}

	if jsonOutput {
		return emitJSON(mods)
	}
	if len(mods) == 0 {
		fmt.Printf("\nNo %s mods in cache for %s\n", status, format.Name(game.Name))
		return nil
	}
	fmt.Printf("\n%s mods for %s:\n\n", status, format.Name(game.Name))
	for _, m := range mods {
		// hidden mods sometimes become unhidden, so honor --refresh
		if refreshFlag {
			refreshed, err := data.Get(ctx, shared.cache, data.Mods, m.CacheKey(), true)
			if err != nil {
				return err
			}
			if refreshed != nil {
				m = refreshed
			}
		}
		printCompact(m)
		if status == data.StatusWastebinned {
			fmt.Printf("    %s\n", format.Muted(m.URL()))
		}
	}
	return nil
}

var hiddenCmd = &cobra.Command{
	Use:   "hidden [game]",
	Short: "Find tracked mods for this game that are hidden, probably so you can untrack them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showWithdrawn(cmd.Context(), gameArg(args, 0), data.StatusHidden, true)
	},
}

var removedCmd = &cobra.Command{
	Use:   "removed [game]",
	Short: "Find mods for this game that are removed, probably so you can untrack them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showWithdrawn(cmd.Context(), gameArg(args, 0), data.StatusRemoved, false)
	},
}

var wastebinnedCmd = &cobra.Command{
	Use:   "wastebinned [game]",
	Short: "Find mods for this game that were wastebinned by their authors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showWithdrawn(cmd.Context(), gameArg(args, 0), data.StatusWastebinned, false)
	},
}

func init() {
	rootCmd.AddCommand(hiddenCmd)
	rootCmd.AddCommand(removedCmd)
	rootCmd.AddCommand(wastebinnedCmd)
}
