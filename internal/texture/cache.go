package texture

import (
	"image"
	"sync"

	"spriter-scml/internal/spriter"
)

// Resolver resolves a file reference to a decoded image.
type Resolver interface {
	Resolve(ref spriter.FileReference) *image.NRGBA
}

// Cache is a concurrency-safe image cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a new image cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches an image. Returns nil if the reference is unknown
// or the image cannot be decoded; failures are cached too.
func (c *Cache) Resolve(ref spriter.FileReference) *image.NRGBA {
	img, _ := c.Load(ref)
	return img
}

// Load is Resolve with the decode error.
func (c *Cache) Load(ref spriter.FileReference) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(ref)
	if !ok {
		return nil, errUnknownRef(ref)
	}

	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	img, err := LoadImage(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached paths, including failed loads.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
