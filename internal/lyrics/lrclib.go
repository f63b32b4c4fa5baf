package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

const defaultUserAgent = "musicpill/1.0"

// Client looks up synced lyrics on an lrclib-compatible endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a lyric client for the given endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

type lrclibResponse struct {
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// Fetch looks up the track and returns its synced lines, or nil when
// the provider has no synced lyrics for it.
func (c *Client) Fetch(ctx context.Context, q Query) ([]core.LyricLine, error) {
	if q.Title == "" {
		return nil, nil
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider url %q: %w", c.baseURL, err)
	}

	params := u.Query()
	params.Set("track_name", q.Title)
	params.Set("artist_name", q.Artist)
	if q.Album != "" {
		params.Set("album_name", q.Album)
	}
	if secs := int(q.Duration / time.Second); secs > 0 {
		params.Set("duration", fmt.Sprintf("%d", secs))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build lyric request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lyric request failed: %w", err)
	}
	defer resp.Body.Close()

	// Not found is an empty result, not an error.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("lyric provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload lrclibResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode lyric response: %w", err)
	}

	if payload.SyncedLyrics == "" {
		return nil, nil
	}

	return ParseSynced(payload.SyncedLyrics), nil
}

var _ Provider = (*Client)(nil)
