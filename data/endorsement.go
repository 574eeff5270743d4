package data

import (
	"context"

	"github.com/ceejbot/modcache/nexus"
)

// EndorsementsKey is the fixed key for the user's endorsement list.
const EndorsementsKey = "endorsements"

// EndorsementStatus is the user's recorded opinion of a mod.
type EndorsementStatus string

const (
	Endorsed  EndorsementStatus = "Endorsed"
	Undecided EndorsementStatus = "Undecided"
	Abstained EndorsementStatus = "Abstained"
)

// Glyph renders the status as a single emoji for compact listings.
func (s EndorsementStatus) Glyph() string {
	switch s {
	case Endorsed:
		return "👍🏻"
	case Abstained:
		return "🚫"
	default:
		return "🤨"
	}
}

// UserEndorsement is one opinion the user has expressed about one mod.
type UserEndorsement struct {
	Date       int64             `json:"date"`
	DomainName string            `json:"domain_name"`
	ModID      int64             `json:"mod_id"`
	Status     EndorsementStatus `json:"status"`
	Version    string            `json:"version"`
}

// EndorsementList is every opinion the user has expressed, across all
// games. The wire format is a bare array; the etag is ours.
type EndorsementList struct {
	Mods []UserEndorsement `json:"mods"`
	Tag  string            `json:"etag"`
}

func (e *EndorsementList) CacheKey() string    { return EndorsementsKey }
func (e *EndorsementList) ETag() string        { return e.Tag }
func (e *EndorsementList) SetETag(etag string) { e.Tag = etag }

// GameMap groups opinions by game domain.
func (e *EndorsementList) GameMap() map[string][]UserEndorsement {
	mapping := make(map[string][]UserEndorsement)
	for _, opinion := range e.Mods {
		mapping[opinion.DomainName] = append(mapping[opinion.DomainName], opinion)
	}
	return mapping
}

// ByGame returns the opinions recorded for one game.
func (e *EndorsementList) ByGame(domain string) []UserEndorsement {
	var opinions []UserEndorsement
	for _, opinion := range e.Mods {
		if opinion.DomainName == domain {
			opinions = append(opinions, opinion)
		}
	}
	return opinions
}

// Endorsements describes how the endorsement list is cached and fetched.
var Endorsements = Resource[EndorsementList, *EndorsementList]{
	Bucket: "endorsements",
	Fetch: func(ctx context.Context, client *nexus.Client, _ string, etag string) (*EndorsementList, string, error) {
		opinions, newEtag, err := nexus.Get[[]UserEndorsement](ctx, client, "/v1/user/endorsements.json", etag)
		if err != nil || opinions == nil {
			return nil, newEtag, err
		}
		return &EndorsementList{Mods: *opinions}, newEtag, nil
	},
}
