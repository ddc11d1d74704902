package standards

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache memoizes Build by content hash, mirroring the catalog cache.
type Cache struct {
	mu   sync.Mutex
	hash string
	idx  *Index
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Load(raw []byte) (*Index, error) {
	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()
	if key == c.hash && c.idx != nil {
		return c.idx, nil
	}
	idx, err := Build(raw)
	if err != nil {
		return nil, err
	}
	c.hash = key
	c.idx = idx
	return idx, nil
}
