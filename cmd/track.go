package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var trackGame string

var trackCmd = &cobra.Command{
	Use:   "track <id> [game]",
	Short: "Track a specific mod",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		resp, err := shared.cache.Nexus.Track(cmd.Context(), gameArg(args, 1), modID)
		if err != nil {
			return err
		}
		fmt.Println(resp.Message)
		return nil
	},
}

var untrackCmd = &cobra.Command{
	Use:   "untrack <id>...",
	Short: "Stop tracking a mod or list of mods, by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for i := range args {
			modID, err := modIDArg(args, i)
			if err != nil {
				return err
			}
			resp, err := shared.cache.Nexus.Untrack(cmd.Context(), trackGame, modID)
			if err != nil {
				fmt.Printf("error untracking %s: %s\n", format.ID(modID), err)
				continue
			}
			fmt.Printf("%s: %s\n", format.ID(modID), resp.Message)
		}
		return nil
	},
}

var untrackRemovedCmd = &cobra.Command{
	Use:   "untrack-removed <game>",
	Short: "Stop tracking all removed mods for a specific game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		domain := args[0]
		if _, err := gameMetadata(ctx, shared, domain); err != nil {
			return err
		}
		tracked, err := data.Get(ctx, shared.cache, data.TrackedMods, data.TrackedKey, refreshFlag)
		if err != nil {
			return err
		}
		if tracked == nil {
			return nil
		}
		trackedIDs := make(map[int64]bool)
		for _, ref := range tracked.ByGame(domain) {
			trackedIDs[ref.ModID] = true
		}

		removed, err := data.RemovedMods(ctx, shared.cache, domain)
		if err != nil {
			return err
		}
		count := 0
		for _, mod := range removed {
			if !trackedIDs[mod.ModID] {
				continue
			}
			if _, err := shared.cache.Nexus.Untrack(ctx, domain, mod.ModID); err != nil {
				fmt.Printf("error untracking %s: %s\n", format.ID(mod.ModID), err)
				continue
			}
			fmt.Printf("untracked %s\n", format.ID(mod.ModID))
			count++
		}
		fmt.Printf("Untracked %s.\n", format.PluralizeMod(count))
		return nil
	},
}

func init() {
	untrackCmd.Flags().StringVarP(&trackGame, "game", "g", DefaultGame,
		"which game the mods belong to; Nexus short name")
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(untrackCmd)
	rootCmd.AddCommand(untrackRemovedCmd)
}
