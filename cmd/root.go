// Package cmd is the modcache command tree. Every command runs against a
// shared app context holding the config, the local cache, and the Nexus
// client.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ceejbot/modcache/config"
	"github.com/ceejbot/modcache/data"
	"github.com/ceejbot/modcache/logger"
	"github.com/ceejbot/modcache/nexus"
	"github.com/ceejbot/modcache/store"
)

// DefaultGame is the game assumed when none is named. The author's bias is
// showing.
const DefaultGame = "skyrimspecialedition"

// PopulateLimit caps API calls made by a single populate run.
const PopulateLimit = 50

type app struct {
	cfg   *config.Config
	log   logger.Logger
	db    *store.Store
	cache *data.Cache
}

var (
	verbosity   int
	jsonOutput  bool
	refreshFlag bool

	shared *app
)

var rootCmd = &cobra.Command{
	Use:           "modcache",
	Short:         "A command-line client for the Nexus Mods API, with local caching",
	Long:          "modcache talks to the Nexus Mods API on your behalf, caching\neverything it fetches so repeated lookups cost you nothing from\nyour API quota. Pass --refresh to revalidate cached data.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level := logger.LevelFromString(cfg.LogLevel)
		if verbosity > 0 {
			level = logger.LevelFromVerbosity(verbosity)
		}
		log := logger.NewConsoleLogger(level)

		if cfg.APIKey == "" {
			return errors.New("you must provide your personal Nexus API key in the env var NEXUS_API_KEY")
		}

		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		client := nexus.New(cfg.APIKey, log,
			nexus.WithTimeout(cfg.RequestTimeout.Std()))

		shared = &app{
			cfg: cfg,
			log: log,
			db:  db,
			cache: &data.Cache{
				DB:    db,
				Nexus: client,
				Log:   log,
			},
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shared != nil {
			shared.db.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"log more; repeat for more detail")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"emit full data as JSON instead of human-readable output")
	rootCmd.PersistentFlags().BoolVar(&refreshFlag, "refresh", false,
		"revalidate cached data against the Nexus")
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// gameArg returns the positional game slug, defaulting when absent.
func gameArg(args []string, index int) string {
	if len(args) > index {
		return args[index]
	}
	return DefaultGame
}

// modIDArg parses a positional mod id.
func modIDArg(args []string, index int) (int64, error) {
	id, err := strconv.ParseInt(args[index], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%q is not a mod id", args[index])
	}
	return id, nil
}

// gameMetadata looks up game metadata, erroring when the slug names nothing
// on the Nexus.
func gameMetadata(ctx context.Context, a *app, domain string) (*data.GameMetadata, error) {
	game, err := data.Get(ctx, a.cache, data.Games, domain, refreshFlag)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, errors.Newf("no game identified as %q found on the Nexus; recheck the slug", domain)
	}
	return game, nil
}

// emitJSON pretty-prints v to stdout.
func emitJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling output")
	}
	fmt.Println(string(raw))
	return nil
}
