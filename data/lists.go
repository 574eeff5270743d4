package data

import (
	"context"

	"github.com/ceejbot/modcache/nexus"
)

// The game-wide discovery lists themselves are never cached since their
// whole value is being current, but each mod they carry is full mod info
// and is cached individually under its compound key.

// Trending fetches the mods trending for a game right now.
func Trending(ctx context.Context, c *Cache, domain string) ([]ModInfoFull, error) {
	return fetchModList(ctx, c, "/v1/games/"+domain+"/mods/trending.json")
}

// LatestAdded fetches the mods most recently added for a game.
func LatestAdded(ctx context.Context, c *Cache, domain string) ([]ModInfoFull, error) {
	return fetchModList(ctx, c, "/v1/games/"+domain+"/mods/latest_added.json")
}

// LatestUpdated fetches the mods most recently updated for a game.
func LatestUpdated(ctx context.Context, c *Cache, domain string) ([]ModInfoFull, error) {
	return fetchModList(ctx, c, "/v1/games/"+domain+"/mods/latest_updated.json")
}

func fetchModList(ctx context.Context, c *Cache, path string) ([]ModInfoFull, error) {
	mods, _, err := nexus.Get[[]ModInfoFull](ctx, c.Nexus, path, "")
	if err != nil {
		return nil, err
	}
	if mods == nil {
		return nil, nil
	}
	for i := range *mods {
		if err := Save(ctx, c, Mods, &(*mods)[i]); err != nil {
			c.Log.Warn("failed to cache %s: %s", (*mods)[i].CacheKey(), err)
		}
	}
	return *mods, nil
}
