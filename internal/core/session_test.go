package core

import (
	"testing"
	"time"
)

func TestEstimatedPositionWhilePlaying(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{
		Status:        StatusPlaying,
		RawPosition:   30 * time.Second,
		RawPositionAt: t0,
	}

	// Estimate growth must match wall-clock elapsed exactly.
	e0 := s.EstimatedPosition(t0)
	e1 := s.EstimatedPosition(t0.Add(7 * time.Second))
	if e0 != 30*time.Second {
		t.Errorf("estimate at t0 = %v, want %v", e0, 30*time.Second)
	}
	if got := e1 - e0; got != 7*time.Second {
		t.Errorf("estimate delta = %v, want %v", got, 7*time.Second)
	}
}

func TestEstimatedPositionFrozenWhilePaused(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{
		Status:        StatusPaused,
		RawPosition:   45 * time.Second,
		RawPositionAt: t0,
	}

	for _, elapsed := range []time.Duration{0, time.Second, time.Hour} {
		if got := s.EstimatedPosition(t0.Add(elapsed)); got != 45*time.Second {
			t.Errorf("estimate after %v paused = %v, want %v", elapsed, got, 45*time.Second)
		}
	}
}

// The upstream estimator deliberately left positions unclamped; this
// implementation clamps against both zero and the track length.
func TestEstimatedPositionClamped(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := &Session{
		Status:        StatusPlaying,
		RawPosition:   -3 * time.Second,
		RawPositionAt: t0,
	}
	if got := s.EstimatedPosition(t0); got != 0 {
		t.Errorf("negative raw position estimate = %v, want 0", got)
	}

	s = &Session{
		Status:        StatusPlaying,
		RawPosition:   170 * time.Second,
		RawPositionAt: t0,
		Meta:          Metadata{Length: 180 * time.Second},
	}
	if got := s.EstimatedPosition(t0.Add(time.Minute)); got != 180*time.Second {
		t.Errorf("estimate past track end = %v, want %v", got, 180*time.Second)
	}
}

func TestLoopStatusCycle(t *testing.T) {
	tests := []struct {
		current LoopStatus
		want    LoopStatus
	}{
		{LoopNone, LoopPlaylist},
		{LoopPlaylist, LoopTrack},
		{LoopTrack, LoopNone},
		{LoopStatus(""), LoopNone},
	}
	for _, tt := range tests {
		if got := tt.current.Next(); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestMetadataIsWebContent(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://music.youtube.com/watch?v=x", true},
		{"HTTP://example.com/stream", true},
		{"file:///home/user/song.mp3", false},
		{"", false},
	}
	for _, tt := range tests {
		m := Metadata{URL: tt.url}
		if got := m.IsWebContent(); got != tt.want {
			t.Errorf("IsWebContent(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
