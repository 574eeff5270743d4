package data

import (
	"context"

	"github.com/ceejbot/modcache/nexus"
)

// TrackedKey is the fixed key for the user's tracking list; there is only
// ever one per API key.
const TrackedKey = "tracked"

// ModReference names a mod without carrying any of its details.
type ModReference struct {
	DomainName string `json:"domain_name"`
	ModID      int64  `json:"mod_id"`
}

// Tracked is the user's full tracking list across all games. The wire
// format is a bare array; the etag is ours.
type Tracked struct {
	Mods []ModReference `json:"mods"`
	Tag  string         `json:"etag"`
}

func (t *Tracked) CacheKey() string    { return TrackedKey }
func (t *Tracked) ETag() string        { return t.Tag }
func (t *Tracked) SetETag(etag string) { t.Tag = etag }

// GameMap groups the tracked mod ids by game domain.
func (t *Tracked) GameMap() map[string][]int64 {
	mapping := make(map[string][]int64)
	for _, ref := range t.Mods {
		mapping[ref.DomainName] = append(mapping[ref.DomainName], ref.ModID)
	}
	return mapping
}

// ByGame returns the tracked mods for one game.
func (t *Tracked) ByGame(domain string) []ModReference {
	var refs []ModReference
	for _, ref := range t.Mods {
		if ref.DomainName == domain {
			refs = append(refs, ref)
		}
	}
	return refs
}

// TrackedMods describes how the tracking list is cached and fetched.
var TrackedMods = Resource[Tracked, *Tracked]{
	Bucket: "mod_ref_lists",
	Fetch: func(ctx context.Context, client *nexus.Client, _ string, etag string) (*Tracked, string, error) {
		refs, newEtag, err := nexus.Get[[]ModReference](ctx, client, "/v1/user/tracked_mods.json", etag)
		if err != nil || refs == nil {
			return nil, newEtag, err
		}
		return &Tracked{Mods: *refs}, newEtag, nil
	},
}
