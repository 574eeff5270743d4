package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var sortKey string

// sortMods orders search results by the requested key. Unknown keys sort
// by id, matching the flag default.
func sortMods(mods []*data.ModInfoFull, key string) {
	switch strings.ToLower(key) {
	case "name":
		sort.SliceStable(mods, func(i, j int) bool {
			return strings.ToLower(mods[i].Name) < strings.ToLower(mods[j].Name)
		})
	case "date":
		sort.SliceStable(mods, func(i, j int) bool {
			return mods[i].UpdatedTimestamp < mods[j].UpdatedTimestamp
		})
	case "author":
		sort.SliceStable(mods, func(i, j int) bool {
			return strings.ToLower(mods[i].UploadedBy) < strings.ToLower(mods[j].UploadedBy)
		})
	default:
		sort.SliceStable(mods, func(i, j int) bool {
			return mods[i].ModID < mods[j].ModID
		})
	}
}

func showMatches(ctx context.Context, mods []*data.ModInfoFull, what, pattern, domain string) error {
	sortMods(mods, sortKey)
	if refreshFlag {
		for i, m := range mods {
			refreshed, err := data.Get(ctx, shared.cache, data.Mods, m.CacheKey(), true)
			if err != nil {
				return err
			}
			if refreshed != nil {
				mods[i] = refreshed
			}
		}
	}
	if jsonOutput {
		return emitJSON(mods)
	}
	if len(mods) == 0 {
		fmt.Printf("No cached mods for %s match %s %q\n", format.Name(domain), what, pattern)
		return nil
	}
	fmt.Printf("\n%s cached for %s matching %s %q:\n\n",
		format.PluralizeMod(len(mods)), format.Name(domain), what, pattern)
	for _, m := range mods {
		printCompact(m)
	}
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search <text> [game]",
	Short: "Find mods that mention this string in their names or text summaries",
	Long:  "Find cached mods that mention this string in their names, summaries,\nor author credits. Pass --refresh to revalidate each result against\nthe Nexus.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		domain := gameArg(args, 1)
		game, err := gameMetadata(ctx, shared, domain)
		if err != nil {
			return err
		}
		mods, err := game.ModsMatchingText(ctx, shared.cache, args[0])
		if err != nil {
			return err
		}
		return showMatches(ctx, mods, "text", args[0], domain)
	},
}

var byNameCmd = &cobra.Command{
	Use:   "by-name <name> [game]",
	Short: "Find mods with names matching the given string, for the named game",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		domain := gameArg(args, 1)
		game, err := gameMetadata(ctx, shared, domain)
		if err != nil {
			return err
		}
		mods, err := game.ModsMatching(ctx, shared.cache, args[0])
		if err != nil {
			return err
		}
		return showMatches(ctx, mods, "name", args[0], domain)
	},
}

var byAuthorCmd = &cobra.Command{
	Use:   "by-author <author> [game]",
	Short: "Find mods by the given author, for the named game",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		domain := gameArg(args, 1)
		game, err := gameMetadata(ctx, shared, domain)
		if err != nil {
			return err
		}
		all, err := game.Mods(ctx, shared.cache)
		if err != nil {
			return err
		}
		pattern := strings.ToLower(args[0])
		matched := all[:0]
		for _, m := range all {
			if strings.Contains(strings.ToLower(m.Author), pattern) ||
				strings.Contains(strings.ToLower(m.UploadedBy), pattern) {
				matched = append(matched, m)
			}
		}
		return showMatches(ctx, matched, "author", args[0], domain)
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, byNameCmd, byAuthorCmd} {
		c.Flags().StringVarP(&sortKey, "sort", "s", "id",
			"sort for the matches: id, name, date, author")
		rootCmd.AddCommand(c)
	}
}
