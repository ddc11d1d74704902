package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/caliber-ui/quotation-app/internal"
)

// Cache memoizes Normalize by content hash. Reloading an unchanged file
// returns the previously built entries; any byte change invalidates.
type Cache struct {
	mu      sync.Mutex
	hash    string
	entries []internal.CatalogEntry
}

func NewCache() *Cache {
	return &Cache{}
}

// Load returns normalized entries for raw, reusing the cached result when
// the content hash matches the last load.
func (c *Cache) Load(raw []byte) ([]internal.CatalogEntry, error) {
	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()
	if key == c.hash && c.entries != nil {
		return c.entries, nil
	}
	entries, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	c.hash = key
	c.entries = entries
	return entries, nil
}

// ContentHash returns the hex sha256 of raw, used to key persisted
// reference files.
func ContentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
