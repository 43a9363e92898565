package repository

import (
	"fmt"
	"time"

	cache "github.com/go-pkgz/expirable-cache"

	"scentbase/models"
)

const catalogKey = "catalog:active"

// CatalogCache keeps the full active catalog in memory between database
// reads. Entries expire after the configured TTL and the whole cache is
// purged on every write, so readers never see a stale catalog for longer
// than one request after an update.
type CatalogCache struct {
	store cache.Cache
	ttl   time.Duration
}

// NewCatalogCache creates a cache whose entries live for ttl.
func NewCatalogCache(ttl time.Duration) (*CatalogCache, error) {
	store, err := cache.NewCache(cache.TTL(ttl), cache.MaxKeys(10))
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %v", err)
	}
	return &CatalogCache{store: store, ttl: ttl}, nil
}

// GetCatalog returns the cached catalog snapshot, if present and fresh.
func (c *CatalogCache) GetCatalog() ([]models.PerfumeRecord, bool) {
	value, ok := c.store.Get(catalogKey)
	if !ok {
		return nil, false
	}
	records, ok := value.([]models.PerfumeRecord)
	return records, ok
}

// SetCatalog stores a catalog snapshot.
func (c *CatalogCache) SetCatalog(records []models.PerfumeRecord) {
	c.store.Set(catalogKey, records, c.ttl)
}

// Purge drops every cached entry. Called after any catalog write.
func (c *CatalogCache) Purge() {
	c.store.Purge()
}
