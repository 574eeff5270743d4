package data

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingCachesEachMember(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/games/skyrimspecialedition/mods/trending.json", r.URL.Path)
		w.Write([]byte(`[
			{"domain_name":"skyrimspecialedition","mod_id":266,"name":"USSEP","status":"published"},
			{"domain_name":"skyrimspecialedition","mod_id":3863,"name":"SkyUI","status":"published"}
		]`))
	})
	ctx := context.Background()

	mods, err := Trending(ctx, h.cache, "skyrimspecialedition")
	require.NoError(t, err)
	require.Len(t, mods, 2)

	// each member landed in the mods bucket under its compound key
	cached, err := Local(ctx, h.cache, Mods, "skyrimspecialedition/3863")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "SkyUI", cached.Name)
}

func TestLatestListsHitTheRightEndpoints(t *testing.T) {
	var paths []string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	_, err := LatestAdded(ctx, h.cache, "fallout4")
	require.NoError(t, err)
	_, err = LatestUpdated(ctx, h.cache, "fallout4")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/v1/games/fallout4/mods/latest_added.json",
		"/v1/games/fallout4/mods/latest_updated.json",
	}, paths)
}
