// Package lyrics fetches time-synced lyric tracks from a network
// provider and parses them into timed lines.
package lyrics

import (
	"context"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

// Query identifies one track for a lyric lookup.
type Query struct {
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// Key returns the cache key the result is filed under.
func (q Query) Key() string {
	return core.TrackKey(q.Title, q.Artist)
}

// Provider performs a lyric lookup. A nil slice with a nil error means
// the provider has nothing for this track; that is not a failure.
type Provider interface {
	Fetch(ctx context.Context, q Query) ([]core.LyricLine, error)
}
