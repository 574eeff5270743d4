package data

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceejbot/modcache/logger"
	"github.com/ceejbot/modcache/nexus"
	"github.com/ceejbot/modcache/store"
)

// harness wires a real store to a fake Nexus and counts requests.
type harness struct {
	cache    *Cache
	requests int
}

func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	h := &harness{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	db, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h.cache = &Cache{
		DB:    db,
		Nexus: nexus.New("test-api-key", logger.NewTestLogger(), nexus.WithBaseURL(server.URL)),
		Log:   logger.NewTestLogger(),
	}
	return h
}

func skyrimJSON(etag string) []byte {
	game := GameMetadata{
		DomainName: "skyrimspecialedition",
		ID:         1704,
		Name:       "Skyrim Special Edition",
		Tag:        etag,
	}
	raw, _ := json.Marshal(&game)
	return raw
}

func TestMissFetchesAndPersists(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/games/skyrimspecialedition.json", r.URL.Path)
		assert.Empty(t, r.Header.Get("if-none-match"))
		w.Header().Set("etag", `W/"g1"`)
		w.Write(skyrimJSON(""))
	})
	ctx := context.Background()

	game, err := Get(ctx, h.cache, Games, "skyrimspecialedition", false)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "Skyrim Special Edition", game.Name)
	assert.Equal(t, `W/"g1"`, game.ETag())
	assert.Equal(t, 1, h.requests)

	// the fetch persisted, etag included
	cached, err := Local(ctx, h.cache, Games, "skyrimspecialedition")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, `W/"g1"`, cached.ETag())
}

func TestFreshHitNeverTouchesTheNetwork(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("etag", `W/"g1"`)
		w.Write(skyrimJSON(""))
	})
	ctx := context.Background()

	_, err := Get(ctx, h.cache, Games, "skyrimspecialedition", false)
	require.NoError(t, err)
	require.Equal(t, 1, h.requests)

	game, err := Get(ctx, h.cache, Games, "skyrimspecialedition", false)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, 1, h.requests, "second lookup should be served locally")
}

func TestRefreshRevalidatesWithETag(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("if-none-match") == `W/"g1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("etag", `W/"g1"`)
		w.Write(skyrimJSON(""))
	})
	ctx := context.Background()

	_, err := Get(ctx, h.cache, Games, "skyrimspecialedition", false)
	require.NoError(t, err)

	game, err := Get(ctx, h.cache, Games, "skyrimspecialedition", true)
	require.NoError(t, err)
	require.NotNil(t, game, "a 304 serves the cached copy")
	assert.Equal(t, "Skyrim Special Edition", game.Name)
	assert.Equal(t, 2, h.requests)
}

func TestRefreshReplacesChangedRecord(t *testing.T) {
	version := 1
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if version == 1 {
			w.Header().Set("etag", `W/"g1"`)
			w.Write(skyrimJSON(""))
			return
		}
		game := GameMetadata{DomainName: "skyrimspecialedition", Name: "Skyrim SE (renamed)"}
		raw, _ := json.Marshal(&game)
		w.Header().Set("etag", `W/"g2"`)
		w.Write(raw)
	})
	ctx := context.Background()

	_, err := Get(ctx, h.cache, Games, "skyrimspecialedition", false)
	require.NoError(t, err)

	version = 2
	game, err := Get(ctx, h.cache, Games, "skyrimspecialedition", true)
	require.NoError(t, err)
	assert.Equal(t, "Skyrim SE (renamed)", game.Name)
	assert.Equal(t, `W/"g2"`, game.ETag())

	// the replacement persisted
	cached, err := Local(ctx, h.cache, Games, "skyrimspecialedition")
	require.NoError(t, err)
	assert.Equal(t, `W/"g2"`, cached.ETag())
}

func TestRemoteNotFoundIsANilRecord(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	game, err := Get(context.Background(), h.cache, Games, "nosuchgame", false)
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestRemoteFailureOnMissPropagates(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := Get(context.Background(), h.cache, Games, "skyrimspecialedition", false)
	assert.Error(t, err)
}

func TestCorruptCacheEntryIsAMiss(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("etag", `W/"g1"`)
		w.Write(skyrimJSON(""))
	})
	ctx := context.Background()
	require.NoError(t, h.cache.DB.Put(ctx, Games.Bucket, "skyrimspecialedition", []byte("not json")))

	game, err := Get(ctx, h.cache, Games, "skyrimspecialedition", false)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, 1, h.requests, "corrupt entry should force a refetch")
}

func TestByPrefixSkipsUndecodableRecords(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	good := &ModInfoFull{DomainName: "skyrimspecialedition", ModID: 266, Name: "USSEP"}
	require.NoError(t, Save(ctx, h.cache, Mods, good))
	require.NoError(t, h.cache.DB.Put(ctx, Mods.Bucket, "skyrimspecialedition/999", []byte("{broken")))

	mods, err := ByPrefix(ctx, h.cache, Mods, GamePrefix("skyrimspecialedition"))
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "USSEP", mods[0].Name)
}

func TestValidateUserAlwaysGoesRemote(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/validate.json", r.URL.Path)
		w.Write([]byte(`{"name":"ceejbot","user_id":98765,"is_premium":true}`))
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		user, err := ValidateUser(ctx, h.cache)
		require.NoError(t, err)
		assert.Equal(t, "ceejbot", user.Name)
	}
	assert.Equal(t, 2, h.requests, "validation must not be served from cache")

	// but each validation refreshed the cached copy
	cached, err := Local(ctx, h.cache, Users, UserKey)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(98765), cached.UserID)
}
