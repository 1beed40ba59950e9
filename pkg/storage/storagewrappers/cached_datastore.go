// Package storagewrappers contains decorators over storage.DocumentStore.
package storagewrappers

import (
	"context"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

const (
	// cachedRecordTTL bounds staleness of provenance reads. Crops and
	// farms change rarely relative to how often traceability reports
	// re-read them.
	cachedRecordTTL = 30 * time.Second

	entryCost = 1
)

type cachedDatastore struct {
	storage.DocumentStore

	lookupGroup singleflight.Group
	cache       *theine.Cache[uint64, any]
}

var _ storage.DocumentStore = (*cachedDatastore)(nil)

// NewCachedDatastore returns a wrapper over a datastore that caches crop and
// farm point lookups, collapsing concurrent lookups for the same record into
// one backend read. Listings and orders are never cached: their status
// drives authorization decisions and must be read fresh.
func NewCachedDatastore(inner storage.DocumentStore, maxSize int64) (storage.DocumentStore, error) {
	cache, err := theine.NewBuilder[uint64, any](maxSize).Build()
	if err != nil {
		return nil, err
	}

	return &cachedDatastore{
		DocumentStore: inner,
		cache:         cache,
	}, nil
}

// GetCrop see [storage.MarketReader].GetCrop.
func (c *cachedDatastore) GetCrop(ctx context.Context, id string) (*types.Crop, error) {
	key := cacheKey("crop", id)
	if v, ok := c.cache.Get(key); ok {
		crop := *(v.(*types.Crop))
		return &crop, nil
	}

	v, err, _ := c.lookupGroup.Do("GetCrop:"+id, func() (interface{}, error) {
		crop, err := c.DocumentStore.GetCrop(ctx, id)
		if err != nil {
			return nil, err
		}
		c.cache.SetWithTTL(key, crop, entryCost, cachedRecordTTL)
		return crop, nil
	})
	if err != nil {
		return nil, err
	}

	crop := *(v.(*types.Crop))
	return &crop, nil
}

// GetFarm see [storage.MarketReader].GetFarm.
func (c *cachedDatastore) GetFarm(ctx context.Context, id string) (*types.Farm, error) {
	key := cacheKey("farm", id)
	if v, ok := c.cache.Get(key); ok {
		farm := *(v.(*types.Farm))
		return &farm, nil
	}

	v, err, _ := c.lookupGroup.Do("GetFarm:"+id, func() (interface{}, error) {
		farm, err := c.DocumentStore.GetFarm(ctx, id)
		if err != nil {
			return nil, err
		}
		c.cache.SetWithTTL(key, farm, entryCost, cachedRecordTTL)
		return farm, nil
	})
	if err != nil {
		return nil, err
	}

	farm := *(v.(*types.Farm))
	return &farm, nil
}

// UpsertCrop see [storage.MarketWriter].UpsertCrop. Invalidates the cached
// entry so subsequent reads observe the write.
func (c *cachedDatastore) UpsertCrop(ctx context.Context, crop *types.Crop) error {
	if err := c.DocumentStore.UpsertCrop(ctx, crop); err != nil {
		return err
	}
	c.cache.Delete(cacheKey("crop", crop.ID))
	return nil
}

// UpsertFarm see [storage.MarketWriter].UpsertFarm. Invalidates the cached
// entry so subsequent reads observe the write.
func (c *cachedDatastore) UpsertFarm(ctx context.Context, farm *types.Farm) error {
	if err := c.DocumentStore.UpsertFarm(ctx, farm); err != nil {
		return err
	}
	c.cache.Delete(cacheKey("farm", farm.ID))
	return nil
}

// Close see [storage.DocumentStore].Close.
func (c *cachedDatastore) Close() {
	c.cache.Close()
	c.DocumentStore.Close()
}

func cacheKey(kind, id string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(kind)
	_, _ = h.WriteString("/")
	_, _ = h.WriteString(id)
	return h.Sum64()
}
