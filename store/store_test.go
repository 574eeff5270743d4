package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "games", "skyrimspecialedition")
	assert.True(t, IsNotFound(err))
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "games", "skyrimspecialedition", []byte(`{"name":"Skyrim SE"}`)))
	val, err := s.Get(ctx, "games", "skyrimspecialedition")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Skyrim SE"}`, string(val))
}

func TestPutOverwritesInPlace(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "games", "morrowind", []byte("old")))
	require.NoError(t, s.Put(ctx, "games", "morrowind", []byte("new")))

	val, err := s.Get(ctx, "games", "morrowind")
	require.NoError(t, err)
	assert.Equal(t, "new", string(val))

	// only one record survives
	all, err := s.ListPrefix(ctx, "games", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBucketsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "games", "k", []byte("game")))
	require.NoError(t, s.Put(ctx, "mods", "k", []byte("mod")))

	val, err := s.Get(ctx, "mods", "k")
	require.NoError(t, err)
	assert.Equal(t, "mod", string(val))
}

func TestListPrefixScopesToGame(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("skyrim/%d", i)
		require.NoError(t, s.Put(ctx, "mods", key, []byte(key)))
	}
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("fallout4/%d", i)
		require.NoError(t, s.Put(ctx, "mods", key, []byte(key)))
	}

	vals, err := s.ListPrefix(ctx, "mods", "skyrim/")
	require.NoError(t, err)
	assert.Len(t, vals, 5)
	for _, v := range vals {
		assert.Contains(t, string(v), "skyrim/")
	}

	vals, err = s.ListPrefix(ctx, "mods", "fallout4/")
	require.NoError(t, err)
	assert.Len(t, vals, 3)
}

func TestListPrefixDoesNotMatchSiblingSlug(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// "skyrim/" must not pick up "skyrimspecialedition/" records
	require.NoError(t, s.Put(ctx, "mods", "skyrim/1", []byte("a")))
	require.NoError(t, s.Put(ctx, "mods", "skyrimspecialedition/1", []byte("b")))

	vals, err := s.ListPrefix(ctx, "mods", "skyrim/")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, "a", string(vals[0]))
}

func TestNextPrefix(t *testing.T) {
	assert.Equal(t, "skyrim0", nextPrefix("skyrim/"))
	assert.Equal(t, "b", nextPrefix("a"))
	assert.Equal(t, "", nextPrefix(""))
	assert.Equal(t, "b", nextPrefix("a\xff\xff"))
	assert.Equal(t, "", nextPrefix("\xff"))
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "b", "k", []byte("v")))
	val, err := s.Get(ctx, "b", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(val))
}
