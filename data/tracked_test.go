package data

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedListDecodesBareArray(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/user/tracked_mods.json", r.URL.Path)
		w.Header().Set("etag", `W/"t1"`)
		w.Write([]byte(`[
			{"domain_name":"skyrimspecialedition","mod_id":266},
			{"domain_name":"skyrimspecialedition","mod_id":3863},
			{"domain_name":"fallout4","mod_id":4598}
		]`))
	})
	ctx := context.Background()

	tracked, err := Get(ctx, h.cache, TrackedMods, TrackedKey, false)
	require.NoError(t, err)
	require.NotNil(t, tracked)
	assert.Len(t, tracked.Mods, 3)
	assert.Equal(t, `W/"t1"`, tracked.ETag())

	mapping := tracked.GameMap()
	assert.Len(t, mapping, 2)
	assert.ElementsMatch(t, []int64{266, 3863}, mapping["skyrimspecialedition"])

	assert.Len(t, tracked.ByGame("fallout4"), 1)
	assert.Empty(t, tracked.ByGame("morrowind"))

	// the wrapped form is what got cached
	cached, err := Local(ctx, h.cache, TrackedMods, TrackedKey)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Len(t, cached.Mods, 3)
}

func TestEndorsementListDecodesBareArray(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":1613667956,"domain_name":"skyrimspecialedition","mod_id":266,"status":"Endorsed","version":"4.2.5"},
			{"date":1613667999,"domain_name":"skyrimspecialedition","mod_id":100,"status":"Abstained","version":"1.0"}
		]`))
	})

	opinions, err := Get(context.Background(), h.cache, Endorsements, EndorsementsKey, false)
	require.NoError(t, err)
	require.NotNil(t, opinions)
	require.Len(t, opinions.Mods, 2)
	assert.Equal(t, Endorsed, opinions.Mods[0].Status)
	assert.Len(t, opinions.ByGame("skyrimspecialedition"), 2)
}

func TestChangelogsBackfillIdentity(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/games/skyrimspecialedition/mods/266/changelogs.json", r.URL.Path)
		w.Write([]byte(`{"4.2.5":["fixed a thing"],"4.2.4":["broke a thing","fixed another"]}`))
	})
	ctx := context.Background()
	key := CompoundKey{Domain: "skyrimspecialedition", ModID: 266}.String()

	logs, err := Get(ctx, h.cache, ModChangelogs, key, false)
	require.NoError(t, err)
	require.NotNil(t, logs)
	assert.Equal(t, "skyrimspecialedition", logs.DomainName)
	assert.Equal(t, int64(266), logs.ModID)
	assert.Equal(t, []string{"4.2.4", "4.2.5"}, logs.VersionsSorted())
	assert.Len(t, logs.Versions["4.2.4"], 2)
}

func TestFilesPrimaryLookup(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"files": [
				{"file_id": 1, "name": "optional textures", "is_primary": false},
				{"file_id": 2, "name": "main install", "is_primary": true}
			],
			"file_updates": [
				{"old_file_id": 1, "new_file_id": 2, "old_file_name": "old.zip", "new_file_name": "new.zip"}
			]
		}`))
	})
	ctx := context.Background()
	key := CompoundKey{Domain: "skyrimspecialedition", ModID: 266}.String()

	files, err := Get(ctx, h.cache, ModFiles, key, false)
	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Equal(t, "skyrimspecialedition", files.DomainName)

	primary := files.PrimaryFile()
	require.NotNil(t, primary)
	assert.Equal(t, "main install", primary.Name)

	assert.NotNil(t, files.FileByID(1))
	assert.Nil(t, files.FileByID(42))
}
