package data

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/ceejbot/modcache/logger"
	"github.com/ceejbot/modcache/nexus"
	"github.com/ceejbot/modcache/store"
)

// Record is anything the cache can hold: it knows its own storage key and
// carries the ETag from its last fetch.
type Record interface {
	CacheKey() string
	ETag() string
	SetETag(etag string)
}

// RecordOf constrains a pointer type to both implement Record and point at
// T, so generic code can allocate a T and use it through the interface.
type RecordOf[T any] interface {
	Record
	*T
}

// Resource describes how one entity type moves between the Nexus and the
// local store. Fetch performs a conditional GET keyed by etag; a nil record
// with a nil error means 304, still current. Merge folds a fresh fetch into
// the cached copy and returns what should be stored and served.
type Resource[T any, PT RecordOf[T]] struct {
	Bucket string
	Fetch  func(ctx context.Context, client *nexus.Client, key string, etag string) (PT, string, error)
	Merge  func(cached, fetched PT) PT
}

// Cache is the read-through layer: it serves local records when it can and
// reaches for the Nexus when it must.
type Cache struct {
	DB    *store.Store
	Nexus *nexus.Client
	Log   logger.Logger
}

// Local returns the cached record for key, or nil when there is none. Read
// failures other than a plain miss are logged and treated as a miss: a
// corrupt cache entry should never block a refetch.
func Local[T any, PT RecordOf[T]](ctx context.Context, c *Cache, r Resource[T, PT], key string) (PT, error) {
	raw, err := c.DB.Get(ctx, r.Bucket, key)
	if err != nil {
		if !store.IsNotFound(err) {
			c.Log.Warn("treating unreadable cache entry as a miss: bucket=%s key=%s err=%s", r.Bucket, key, err)
		}
		return nil, nil
	}
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.Log.Warn("treating undecodable cache entry as a miss: bucket=%s key=%s err=%s", r.Bucket, key, err)
		return nil, nil
	}
	return PT(&rec), nil
}

// Save writes a record into its bucket under its own key.
func Save[T any, PT RecordOf[T]](ctx context.Context, c *Cache, r Resource[T, PT], rec PT) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "marshaling %s/%s", r.Bucket, rec.CacheKey())
	}
	return c.DB.Put(ctx, r.Bucket, rec.CacheKey(), raw)
}

// Get is the composite lookup. A cache hit is served as-is unless refresh is
// set, in which case a conditional fetch revalidates it. A miss always goes
// to the network. Store write failures degrade to a warning: the caller
// still gets the data it asked for.
func Get[T any, PT RecordOf[T]](ctx context.Context, c *Cache, r Resource[T, PT], key string, refresh bool) (PT, error) {
	cached, err := Local(ctx, c, r, key)
	if err != nil {
		return nil, err
	}
	if cached != nil && !refresh {
		return cached, nil
	}

	etag := ""
	if cached != nil {
		etag = cached.ETag()
	}
	fetched, newEtag, err := r.Fetch(ctx, c.Nexus, key, etag)
	if err != nil {
		if nexus.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if fetched == nil {
		// 304: the cached copy is still current; no write needed
		return cached, nil
	}
	fetched.SetETag(newEtag)

	result := fetched
	if cached != nil && r.Merge != nil {
		result = r.Merge(cached, fetched)
	}
	if err := Save(ctx, c, r, result); err != nil {
		c.Log.Warn("failed to cache %s/%s: %s", r.Bucket, key, err)
	}
	return result, nil
}

// ByPrefix returns every cached record in the bucket whose key starts with
// prefix, in key order. Undecodable records are skipped with a warning.
func ByPrefix[T any, PT RecordOf[T]](ctx context.Context, c *Cache, r Resource[T, PT], prefix string) ([]PT, error) {
	raws, err := c.DB.ListPrefix(ctx, r.Bucket, prefix)
	if err != nil {
		return nil, err
	}
	records := make([]PT, 0, len(raws))
	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.Log.Warn("skipping undecodable cache entry in bucket %s: %s", r.Bucket, err)
			continue
		}
		records = append(records, PT(&rec))
	}
	return records, nil
}
