package data

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/ceejbot/modcache/nexus"
)

// ModCategory is one entry in a game's category tree. ParentCategory is
// either boolean false for a top-level category or the numeric id of the
// parent, so it stays raw JSON.
type ModCategory struct {
	CategoryID     int    `json:"category_id"`
	Name           string `json:"name"`
	ParentCategory any    `json:"parent_category"`
}

// GameMetadata is everything the Nexus tells us about one game, keyed by
// its domain name.
type GameMetadata struct {
	ApprovedDate     int64         `json:"approved_date"`
	Authors          int64         `json:"authors"`
	Categories       []ModCategory `json:"categories"`
	DomainName       string        `json:"domain_name"`
	Downloads        int64         `json:"downloads"`
	FileCount        int64         `json:"file_count"`
	FileEndorsements int64         `json:"file_endorsements"`
	FileViews        int64         `json:"file_views"`
	ForumURL         string        `json:"forum_url"`
	Genre            string        `json:"genre"`
	ID               int64         `json:"id"`
	ModCount         int64         `json:"mods"`
	Name             string        `json:"name"`
	NexusmodsURL     string        `json:"nexusmods_url"`
	Tag              string        `json:"etag"`

	categoryMap map[int]ModCategory
}

func (g *GameMetadata) CacheKey() string    { return g.DomainName }
func (g *GameMetadata) ETag() string        { return g.Tag }
func (g *GameMetadata) SetETag(etag string) { g.Tag = etag }

// CategoryByID looks up a category in this game's tree, building the lookup
// map lazily.
func (g *GameMetadata) CategoryByID(id int) (ModCategory, bool) {
	if g.categoryMap == nil {
		g.categoryMap = make(map[int]ModCategory, len(g.Categories))
		for _, cat := range g.Categories {
			g.categoryMap[cat.CategoryID] = cat
		}
	}
	cat, ok := g.categoryMap[id]
	return cat, ok
}

// Games describes how game metadata is cached and fetched.
var Games = Resource[GameMetadata, *GameMetadata]{
	Bucket: "games",
	Fetch: func(ctx context.Context, client *nexus.Client, key string, etag string) (*GameMetadata, string, error) {
		return nexus.Get[GameMetadata](ctx, client, "/v1/games/"+key+".json", etag)
	},
}

// Mods returns every mod cached for this game, sorted by name without
// regard to case.
func (g *GameMetadata) Mods(ctx context.Context, c *Cache) ([]*ModInfoFull, error) {
	mods, err := ByPrefix(ctx, c, Mods, GamePrefix(g.DomainName))
	if err != nil {
		return nil, err
	}
	sortModsByName(mods)
	return mods, nil
}

// ModsMatching returns this game's cached mods whose names match the
// case-insensitive pattern.
func (g *GameMetadata) ModsMatching(ctx context.Context, c *Cache, pattern string) ([]*ModInfoFull, error) {
	patt, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	mods, err := ByPrefix(ctx, c, Mods, GamePrefix(g.DomainName))
	if err != nil {
		return nil, err
	}
	matched := mods[:0]
	for _, m := range mods {
		if patt.MatchString(m.Name) {
			matched = append(matched, m)
		}
	}
	sortModsByName(matched)
	return matched, nil
}

// ModsMatchingText casts a wider net than ModsMatching: names, summaries,
// and author credits all count.
func (g *GameMetadata) ModsMatchingText(ctx context.Context, c *Cache, pattern string) ([]*ModInfoFull, error) {
	patt, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	mods, err := ByPrefix(ctx, c, Mods, GamePrefix(g.DomainName))
	if err != nil {
		return nil, err
	}
	matched := mods[:0]
	for _, m := range mods {
		if patt.MatchString(m.Name) || patt.MatchString(m.Summary) ||
			patt.MatchString(m.UploadedBy) || patt.MatchString(m.Author) {
			matched = append(matched, m)
		}
	}
	sortModsByName(matched)
	return matched, nil
}

func sortModsByName(mods []*ModInfoFull) {
	sort.SliceStable(mods, func(i, j int) bool {
		return strings.ToLower(mods[i].Name) < strings.ToLower(mods[j].Name)
	})
}
