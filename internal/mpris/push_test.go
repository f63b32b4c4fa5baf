package mpris

import (
	"testing"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

type recordingSink struct {
	lyrics []core.PushedLyric
	liked  []bool
}

func (s *recordingSink) PushLyric(p core.PushedLyric) { s.lyrics = append(s.lyrics, p) }
func (s *recordingSink) PushLiked(liked bool)         { s.liked = append(s.liked, liked) }

func TestPushReceiverConvertsDuration(t *testing.T) {
	sink := &recordingSink{}
	recv := pushReceiver{sink: sink}

	if err := recv.PushLyric("MediaPlayer2.spotify", "a line", 2500); err != nil {
		t.Fatalf("PushLyric returned %v", err)
	}

	if len(sink.lyrics) != 1 {
		t.Fatalf("lyrics = %d, want 1", len(sink.lyrics))
	}
	got := sink.lyrics[0]
	if got.Sender != "MediaPlayer2.spotify" || got.Content != "a line" {
		t.Errorf("pushed = %+v", got)
	}
	if got.Duration != 2500*time.Millisecond {
		t.Errorf("Duration = %v, want 2.5s", got.Duration)
	}
}

func TestPushReceiverLiked(t *testing.T) {
	sink := &recordingSink{}
	recv := pushReceiver{sink: sink}

	if err := recv.PushLiked(true); err != nil {
		t.Fatalf("PushLiked returned %v", err)
	}
	if len(sink.liked) != 1 || !sink.liked[0] {
		t.Errorf("liked = %v, want [true]", sink.liked)
	}
}
