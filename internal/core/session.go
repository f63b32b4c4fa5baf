package core

import (
	"strings"
	"time"
)

// PlaybackStatus is the MPRIS playback status of a session.
type PlaybackStatus string

const (
	StatusPlaying PlaybackStatus = "Playing"
	StatusPaused  PlaybackStatus = "Paused"
	StatusStopped PlaybackStatus = "Stopped"
)

// LoopStatus is the MPRIS loop mode of a session.
type LoopStatus string

const (
	LoopNone     LoopStatus = "None"
	LoopPlaylist LoopStatus = "Playlist"
	LoopTrack    LoopStatus = "Track"
)

// Next returns the loop mode that follows s in the toggle cycle.
func (s LoopStatus) Next() LoopStatus {
	switch s {
	case LoopNone:
		return LoopPlaylist
	case LoopPlaylist:
		return LoopTrack
	default:
		return LoopNone
	}
}

// Metadata is the decoded track metadata of a session. Fields absent
// from the wire metadata bag are left at their zero value.
type Metadata struct {
	Title   string
	Artists []string
	Album   string
	ArtURL  string
	TrackID string
	URL     string
	Length  time.Duration
}

// Artist returns the artist list joined for display.
func (m Metadata) Artist() string {
	return strings.Join(m.Artists, ", ")
}

// HasTitle reports whether the metadata carries a non-empty title.
func (m Metadata) HasTitle() bool {
	return m.Title != ""
}

// IsWebContent reports whether the track URL points at web content.
func (m Metadata) IsWebContent() bool {
	u := strings.ToLower(m.URL)
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// Session is one media player's live state as observed through the bus.
// At most one Session exists per bus name.
type Session struct {
	BusName      string
	Identity     string
	DesktopEntry string

	Status  PlaybackStatus
	Meta    Metadata
	Shuffle bool
	Loop    LoopStatus
	Volume  float64

	// RawPosition is the last position reported by the player and
	// RawPositionAt the wall-clock time it was observed. Everything
	// in between is estimated.
	RawPosition   time.Duration
	RawPositionAt time.Time

	LastPlayingAt time.Time
	LastSeenAt    time.Time
}

// DisplayName returns the friendliest name known for the session.
func (s *Session) DisplayName() string {
	if s.Identity != "" {
		return s.Identity
	}
	return s.BusName
}

// EstimatedPosition reconstructs the playback position at now from the
// last raw report. The estimate grows with wall-clock time only while
// the session is playing, never goes negative, and is clamped to the
// track length when one is known.
func (s *Session) EstimatedPosition(now time.Time) time.Duration {
	pos := s.RawPosition
	if s.Status == StatusPlaying && !s.RawPositionAt.IsZero() {
		pos += now.Sub(s.RawPositionAt)
	}
	if pos < 0 {
		pos = 0
	}
	if l := s.Meta.Length; l > 0 && pos > l {
		pos = l
	}
	return pos
}
