package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var populateLimit int

var populateCmd = &cobra.Command{
	Use:   "populate [game]",
	Short: "Populate the local cache with mods tracked for a specific game",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return populate(cmd.Context(), gameArg(args, 0), populateLimit, refreshFlag)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [game]",
	Short: "Refresh your tracked mods and pull new ones to cache",
	Long:  "Refresh your tracked mods and pull new ones to cache.\nEquivalent to `tracked --refresh` followed by `populate` for the game.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return populate(cmd.Context(), gameArg(args, 0), PopulateLimit, true)
	},
}

// populate walks the tracking list for one game and caches the first limit
// mods not already cached. Individual fetch failures are logged and
// skipped; a removed or hidden mod should not stop the walk.
func populate(ctx context.Context, domain string, limit int, refresh bool) error {
	if _, err := gameMetadata(ctx, shared, domain); err != nil {
		return err
	}

	tracked, err := data.Get(ctx, shared.cache, data.TrackedMods, data.TrackedKey, refresh)
	if err != nil {
		return err
	}
	if tracked == nil {
		return errors.New("unable to fetch any tracked mods")
	}

	refs := tracked.ByGame(domain)
	fmt.Printf("You are tracking %s total and %d for this game.\n",
		format.PluralizeMod(len(tracked.Mods)), len(refs))
	fmt.Printf("Caching the first %d not yet cached...\n", limit)

	fetches := 0
	for _, ref := range refs {
		if fetches >= limit {
			fmt.Printf("Stopping at the API call limit of %d; run again to continue.\n", limit)
			break
		}
		key := data.CompoundKey{Domain: ref.DomainName, ModID: ref.ModID}.String()
		cached, err := data.Local(ctx, shared.cache, data.Mods, key)
		if err != nil {
			return err
		}
		if cached != nil {
			continue
		}
		mod, err := data.Get(ctx, shared.cache, data.Mods, key, false)
		if err != nil {
			return err
		}
		fetches++
		if mod == nil {
			shared.log.Info("unable to find %s for caching", key)
			continue
		}
		fmt.Printf("   %s <%s> -> cache\n", format.Name(mod.DisplayName()), format.ID(mod.ModID))
	}
	fmt.Printf("Fetched %s.\n", format.PluralizeMod(fetches))
	return nil
}

func init() {
	populateCmd.Flags().IntVarP(&populateLimit, "limit", "l", PopulateLimit,
		"the number of API calls allowed before stopping")
	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(updateCmd)
}
