package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

func showModList(ctx context.Context, what, domain string,
	fetch func(context.Context, *data.Cache, string) ([]data.ModInfoFull, error),
) error {
	mods, err := fetch(ctx, shared.cache, domain)
	if err != nil {
		return err
	}
	if jsonOutput {
		return emitJSON(mods)
	}
	fmt.Printf("\n%s for %s:\n\n", what, format.Name(domain))
	for i := range mods {
		printCompact(&mods[i])
	}
	return nil
}

var trendingCmd = &cobra.Command{
	Use:   "trending [game]",
	Short: "Show the 10 top all-time trending mods for a game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showModList(cmd.Context(), "Trending mods", gameArg(args, 0), data.Trending)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest [game]",
	Short: "Show 10 mods most recently added for a game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showModList(cmd.Context(), "Latest mods", gameArg(args, 0), data.LatestAdded)
	},
}

var updatedCmd = &cobra.Command{
	Use:   "updated [game]",
	Short: "Show the 10 mods most recently updated for a game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showModList(cmd.Context(), "Recently updated mods", gameArg(args, 0), data.LatestUpdated)
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(updatedCmd)
}
