package core

import (
	"testing"
	"time"
)

func testTrack() *LyricTrack {
	return &LyricTrack{
		Key: TrackKey("Song", "Artist"),
		Lines: []LyricLine{
			{At: 0, Text: "first"},
			{At: 10 * time.Second, Text: "second"},
			{At: 12 * time.Second, Text: "third"},
			{At: 30 * time.Second, Text: "last"},
		},
	}
}

func TestIndexAt(t *testing.T) {
	track := testTrack()

	tests := []struct {
		pos  time.Duration
		want int
	}{
		{-time.Second, -1},
		{0, 0},
		{9 * time.Second, 0},
		{10 * time.Second, 1},
		{11 * time.Second, 1},
		{12 * time.Second, 2},
		{29 * time.Second, 2},
		{30 * time.Second, 3},
		{time.Hour, 3},
	}
	for _, tt := range tests {
		if got := track.IndexAt(tt.pos); got != tt.want {
			t.Errorf("IndexAt(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestIndexAtEmpty(t *testing.T) {
	var track *LyricTrack
	if got := track.IndexAt(time.Second); got != -1 {
		t.Errorf("IndexAt on nil track = %d, want -1", got)
	}
	if !track.Empty() {
		t.Error("nil track should be empty")
	}
}

func TestDisplayDuration(t *testing.T) {
	track := testTrack()

	if got := track.DisplayDuration(1); got != 2*time.Second {
		t.Errorf("DisplayDuration(1) = %v, want %v", got, 2*time.Second)
	}
	if got := track.DisplayDuration(3); got != DefaultLineDuration {
		t.Errorf("DisplayDuration(last) = %v, want %v", got, DefaultLineDuration)
	}
	if got := track.DisplayDuration(-1); got != 0 {
		t.Errorf("DisplayDuration(-1) = %v, want 0", got)
	}
}

func TestTrackKey(t *testing.T) {
	if got := TrackKey("Title", "A, B"); got != "Title||A, B" {
		t.Errorf("TrackKey = %q", got)
	}
}
