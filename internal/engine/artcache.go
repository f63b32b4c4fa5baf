package engine

import (
	"os"
	"strings"
)

// ArtCache remembers the last non-empty art reference seen per player,
// so sessions that momentarily drop their art keep showing the
// previous cover. Entries live until the owning session is destroyed.
type ArtCache struct {
	entries      map[string]string
	fallbackPath string
}

// NewArtCache creates an art cache with an optional fallback image
// path used when nothing is cached.
func NewArtCache(fallbackPath string) *ArtCache {
	return &ArtCache{
		entries:      make(map[string]string),
		fallbackPath: fallbackPath,
	}
}

// artCacheKey normalizes a bus name: multi-instance players suffix
// their name with ".instance<pid>", which would fragment the cache.
func artCacheKey(busName string) string {
	if i := strings.Index(busName, ".instance"); i >= 0 {
		return busName[:i]
	}
	return busName
}

// Resolve returns the art reference to display for a session given its
// currently reported art. Non-empty art is remembered; empty art falls
// back to the cache, then to the configured fallback image.
func (c *ArtCache) Resolve(busName, currentArt string) string {
	key := artCacheKey(busName)

	if strings.TrimSpace(currentArt) != "" {
		c.entries[key] = currentArt
		return currentArt
	}

	if cached, ok := c.entries[key]; ok {
		return cached
	}

	if c.fallbackPath != "" {
		if _, err := os.Stat(c.fallbackPath); err == nil {
			return "file://" + c.fallbackPath
		}
	}

	return ""
}

// Remove drops the entry for a destroyed session.
func (c *ArtCache) Remove(busName string) {
	delete(c.entries, artCacheKey(busName))
}
