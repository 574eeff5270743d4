package data

import (
	"context"
	"fmt"

	"github.com/ceejbot/modcache/nexus"
)

// ModStatus is the publication status the Nexus reports for a mod. Statuses
// other than published and not_published mean the mod's details have been
// withdrawn from public view in some way.
type ModStatus string

const (
	StatusNotPublished    ModStatus = "not_published"
	StatusPublished       ModStatus = "published"
	StatusHidden          ModStatus = "hidden"
	StatusRemoved         ModStatus = "removed"
	StatusWastebinned     ModStatus = "wastebinned"
	StatusUnderModeration ModStatus = "under_moderation"
)

// Withdrawn reports whether this status means the Nexus no longer serves
// the mod's full details.
func (s ModStatus) Withdrawn() bool {
	switch s {
	case StatusHidden, StatusRemoved, StatusWastebinned, StatusUnderModeration:
		return true
	default:
		return false
	}
}

// ModAuthor points at the Nexus user who uploaded a mod.
type ModAuthor struct {
	MemberGroupID int    `json:"member_group_id"`
	MemberID      int64  `json:"member_id"`
	Name          string `json:"name"`
}

// ModEndorsement is the authenticated user's opinion of a mod, as embedded
// in mod info responses.
type ModEndorsement struct {
	EndorseStatus EndorsementStatus `json:"endorse_status"`
	Timestamp     *int64            `json:"timestamp"`
	Version       *string           `json:"version"`
}

// ModInfoFull is the full mod info response from the Nexus, cached under
// "{domain}/{id}".
type ModInfoFull struct {
	DomainName              string          `json:"domain_name"`
	ModID                   int64           `json:"mod_id"`
	Name                    string          `json:"name"`
	Summary                 string          `json:"summary"`
	PictureURL              *string         `json:"picture_url"`
	Version                 string          `json:"version"`
	Author                  string          `json:"author"`
	UploadedBy              string          `json:"uploaded_by"`
	User                    ModAuthor       `json:"user"`
	UploadedUsersProfileURL string          `json:"uploaded_users_profile_url"`
	Description             string          `json:"description"`
	CreatedTime             string          `json:"created_time"`
	CreatedTimestamp        int64           `json:"created_timestamp"`
	UpdatedTime             string          `json:"updated_time"`
	UpdatedTimestamp        int64           `json:"updated_timestamp"`
	Available               bool            `json:"available"`
	Status                  ModStatus       `json:"status"`
	AllowRating             bool            `json:"allow_rating"`
	CategoryID              int             `json:"category_id"`
	ContainsAdultContent    bool            `json:"contains_adult_content"`
	Endorsement             *ModEndorsement `json:"endorsement"`
	EndorsementCount        int64           `json:"endorsement_count"`
	GameID                  int64           `json:"game_id"`
	UID                     int64           `json:"uid"`
	Tag                     string          `json:"etag"`
}

func (m *ModInfoFull) CacheKey() string {
	return CompoundKey{Domain: m.DomainName, ModID: m.ModID}.String()
}

func (m *ModInfoFull) ETag() string        { return m.Tag }
func (m *ModInfoFull) SetETag(etag string) { m.Tag = etag }

// URL is the mod's page on the Nexus website.
func (m *ModInfoFull) URL() string {
	return fmt.Sprintf("https://www.nexusmods.com/%s/mods/%d", m.DomainName, m.ModID)
}

// DisplayName falls back to the mod's key when its details have been
// withdrawn and the name field comes back empty.
func (m *ModInfoFull) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.CacheKey()
}

// Mods describes how full mod info is cached and fetched.
var Mods = Resource[ModInfoFull, *ModInfoFull]{
	Bucket: "mods",
	Fetch: func(ctx context.Context, client *nexus.Client, key string, etag string) (*ModInfoFull, string, error) {
		parsed, err := ParseCompoundKey(key)
		if err != nil {
			return nil, "", err
		}
		path := fmt.Sprintf("/v1/games/%s/mods/%d.json", parsed.Domain, parsed.ModID)
		return nexus.Get[ModInfoFull](ctx, client, path, etag)
	},
	Merge: mergeModInfo,
}

// mergeModInfo decides what to keep when a refresh lands. A withdrawn mod
// comes back with its details scrubbed, so wholesale replacement would
// destroy the mod name, description, and file details we already know.
// Instead the cached copy keeps its details and takes only the withdrawal
// itself. A published fetch replaces the cached copy outright.
func mergeModInfo(cached, fetched *ModInfoFull) *ModInfoFull {
	if !fetched.Status.Withdrawn() {
		return fetched
	}
	merged := *cached
	merged.Status = fetched.Status
	merged.Available = fetched.Available
	merged.UpdatedTime = fetched.UpdatedTime
	merged.UpdatedTimestamp = fetched.UpdatedTimestamp
	merged.Tag = fetched.Tag
	return &merged
}

// modsWithStatus filters a game's cached mods down to one status.
func modsWithStatus(ctx context.Context, c *Cache, domain string, status ModStatus) ([]*ModInfoFull, error) {
	mods, err := ByPrefix(ctx, c, Mods, GamePrefix(domain))
	if err != nil {
		return nil, err
	}
	matched := mods[:0]
	for _, m := range mods {
		if m.Status == status {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// HiddenMods returns the cached mods for a game currently hidden by their
// authors.
func HiddenMods(ctx context.Context, c *Cache, domain string) ([]*ModInfoFull, error) {
	return modsWithStatus(ctx, c, domain, StatusHidden)
}

// RemovedMods returns the cached mods for a game removed by moderators.
func RemovedMods(ctx context.Context, c *Cache, domain string) ([]*ModInfoFull, error) {
	return modsWithStatus(ctx, c, domain, StatusRemoved)
}

// WastebinnedMods returns the cached mods for a game discarded by their
// authors.
func WastebinnedMods(ctx context.Context, c *Cache, domain string) ([]*ModInfoFull, error) {
	return modsWithStatus(ctx, c, domain, StatusWastebinned)
}
