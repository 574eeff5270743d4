package data

import (
	"context"
	"fmt"
	"sort"

	"github.com/ceejbot/modcache/nexus"
)

// Changelogs holds every changelog the author has published for one mod,
// keyed by version string. The wire format is a bare map; the identifying
// fields and etag are backfilled before caching.
type Changelogs struct {
	DomainName string              `json:"domain_name"`
	ModID      int64               `json:"mod_id"`
	Versions   map[string][]string `json:"versions"`
	Tag        string              `json:"etag"`
}

func (c *Changelogs) CacheKey() string {
	return CompoundKey{Domain: c.DomainName, ModID: c.ModID}.String()
}

func (c *Changelogs) ETag() string        { return c.Tag }
func (c *Changelogs) SetETag(etag string) { c.Tag = etag }

// VersionsSorted returns the version strings in lexical order, for stable
// output. The Nexus does not guarantee the versions parse as semver.
func (c *Changelogs) VersionsSorted() []string {
	versions := make([]string, 0, len(c.Versions))
	for v := range c.Versions {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// ModChangelogs describes how changelogs are cached and fetched.
var ModChangelogs = Resource[Changelogs, *Changelogs]{
	Bucket: "changelogs",
	Fetch: func(ctx context.Context, client *nexus.Client, key string, etag string) (*Changelogs, string, error) {
		parsed, err := ParseCompoundKey(key)
		if err != nil {
			return nil, "", err
		}
		path := fmt.Sprintf("/v1/games/%s/mods/%d/changelogs.json", parsed.Domain, parsed.ModID)
		versions, newEtag, err := nexus.Get[map[string][]string](ctx, client, path, etag)
		if err != nil || versions == nil {
			return nil, newEtag, err
		}
		// the response does not identify the mod it belongs to
		return &Changelogs{
			DomainName: parsed.Domain,
			ModID:      parsed.ModID,
			Versions:   *versions,
		}, newEtag, nil
	},
}
