package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/format"
)

var changelogsCmd = &cobra.Command{
	Use:   "changelogs <id> [game]",
	Short: "Get changelogs for a specific mod",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		modID, err := modIDArg(args, 0)
		if err != nil {
			return err
		}
		domain := gameArg(args, 1)
		key := data.CompoundKey{Domain: domain, ModID: modID}.String()
		logs, err := data.Get(ctx, shared.cache, data.ModChangelogs, key, refreshFlag)
		if err != nil {
			return err
		}
		if logs == nil {
			fmt.Printf("No changelogs found for %s\n", format.Muted(key))
			return nil
		}
		if jsonOutput {
			return emitJSON(logs)
		}

		title := key
		if mod, err := data.Local(ctx, shared.cache, data.Mods, key); err == nil && mod != nil {
			title = mod.DisplayName()
		}
		fmt.Printf("\nChangelogs for %s:\n", format.Header(title))
		for _, version := range logs.VersionsSorted() {
			fmt.Printf("\n%s\n", format.Name(version))
			for _, entry := range logs.Versions[version] {
				fmt.Printf("    %s\n", entry)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changelogsCmd)
}
