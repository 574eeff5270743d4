package data

import (
	"context"

	"github.com/ceejbot/modcache/nexus"
)

// UserKey is the fixed key the authenticated user is cached under.
const UserKey = "authed_user"

// AuthenticatedUser is who the Nexus says the API key belongs to.
type AuthenticatedUser struct {
	Email       string `json:"email"`
	IsPremium   bool   `json:"is_premium"`
	IsSupporter bool   `json:"is_supporter"`
	Name        string `json:"name"`
	ProfileURL  string `json:"profile_url"`
	UserID      int64  `json:"user_id"`
	Tag         string `json:"etag"`
}

func (u *AuthenticatedUser) CacheKey() string    { return UserKey }
func (u *AuthenticatedUser) ETag() string        { return u.Tag }
func (u *AuthenticatedUser) SetETag(etag string) { u.Tag = etag }

// URL is the user's page on the Nexus website.
func (u *AuthenticatedUser) URL() string {
	return u.ProfileURL
}

// Users describes how the authenticated user is cached.
var Users = Resource[AuthenticatedUser, *AuthenticatedUser]{
	Bucket: "authed_users",
	Fetch: func(ctx context.Context, client *nexus.Client, _ string, etag string) (*AuthenticatedUser, string, error) {
		return nexus.Get[AuthenticatedUser](ctx, client, "/v1/users/validate.json", etag)
	},
}

// ValidateUser checks the API key against the Nexus. The answer always
// comes from the network since validity is the whole point; the cached copy
// is refreshed as a side effect.
func ValidateUser(ctx context.Context, c *Cache) (*AuthenticatedUser, error) {
	user, newEtag, err := Users.Fetch(ctx, c.Nexus, UserKey, "")
	if err != nil {
		return nil, err
	}
	user.SetETag(newEtag)
	if err := Save(ctx, c, Users, user); err != nil {
		c.Log.Warn("failed to cache authenticated user: %s", err)
	}
	return user, nil
}
