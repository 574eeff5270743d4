package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var gameCmd = &cobra.Command{
	Use:   "game [game]",
	Short: "Get Nexus metadata about a game by slug",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := gameMetadata(cmd.Context(), shared, gameArg(args, 0))
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(game)
		}
		fmt.Printf("\n%s\n%s\n\n", format.Header(game.Name), format.Link(game.NexusmodsURL, game.NexusmodsURL))
		format.Table(cmd.OutOrStdout(), []string{"", ""}, [][]string{
			{"genre", game.Genre},
			{"mods", fmt.Sprintf("%d", game.ModCount)},
			{"authors", fmt.Sprintf("%d", game.Authors)},
			{"downloads", fmt.Sprintf("%d", game.Downloads)},
			{"files", fmt.Sprintf("%d", game.FileCount)},
		})
		return nil
	},
}

var modsCmd = &cobra.Command{
	Use:   "mods [game]",
	Short: "Get all mods locally cached for this game by slug",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		game, err := gameMetadata(ctx, shared, gameArg(args, 0))
		if err != nil {
			return err
		}
		mods, err := game.Mods(ctx, shared.cache)
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(mods)
		}
		fmt.Printf("\n%s cached for %s:\n\n", format.PluralizeMod(len(mods)), format.Name(game.Name))
		for _, m := range mods {
			printCompact(m)
		}
		return nil
	},
}

var modCmd = &cobra.Command{
	Use:   "mod <id> [game]",
	Short: "Display detailed info for a single mod",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		domain := gameArg(args, 1)
		key := data.CompoundKey{Domain: domain, ModID: modID}.String()
		mod, err := data.Get(ctx, shared.cache, data.Mods, key, refreshFlag)
		if err != nil {
			return err
		}
		if mod == nil {
			fmt.Printf("No mod found at %s\n", format.Muted(key))
			return nil
		}
		if jsonOutput {
			return emitJSON(mod)
		}

		fmt.Printf("\n%s\n", format.Header(mod.DisplayName()))
		fmt.Printf("%s @ %s\n", mod.Version, mod.UpdatedTime)
		fmt.Printf("uploaded by %s\n", mod.UploadedBy)
		if game, err := data.Local(ctx, shared.cache, data.Games, domain); err == nil && game != nil {
			if cat, ok := game.CategoryByID(mod.CategoryID); ok {
				fmt.Printf("category: %s\n", cat.Name)
			}
		}
		fmt.Printf("%s\n\n%s\n", format.Link(mod.URL(), mod.URL()), mod.Summary)
		if mod.Status.Withdrawn() {
			fmt.Printf("\n%s\n", format.Warn("this mod is "+string(mod.Status)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(modCmd)
}
