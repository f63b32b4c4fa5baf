package engine

import (
	"testing"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

func sessionWith(busName string, status core.PlaybackStatus, title string) *core.Session {
	return &core.Session{
		BusName: busName,
		Status:  status,
		Meta:    core.Metadata{Title: title},
	}
}

func TestArbiterPrefersPlayingWithTitle(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")

	paused := sessionWith("org.mpris.MediaPlayer2.a", core.StatusPaused, "Song A")
	playing := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPlaying, "Song B")

	got := a.Select([]*core.Session{paused, playing})
	if got != playing {
		t.Errorf("Select = %v, want the playing session", got)
	}
}

func TestArbiterPausedBeatsStopped(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")

	stopped := sessionWith("org.mpris.MediaPlayer2.a", core.StatusStopped, "Song A")
	paused := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPaused, "Song B")

	if got := a.Select([]*core.Session{stopped, paused}); got != paused {
		t.Errorf("Select = %v, want the paused session", got)
	}
}

func TestArbiterTieBreaksOnRecency(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	older := sessionWith("org.mpris.MediaPlayer2.a", core.StatusPaused, "Song A")
	older.LastPlayingAt = base
	newer := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPaused, "Song B")
	newer.LastPlayingAt = base.Add(time.Minute)

	if got := a.Select([]*core.Session{older, newer}); got != newer {
		t.Errorf("Select = %v, want the more recently playing session", got)
	}
}

func TestArbiterSelectIsDeterministic(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")

	// Identical claims; ties must resolve by candidate order, which the
	// registry keeps sorted by bus name.
	s1 := sessionWith("org.mpris.MediaPlayer2.a", core.StatusPaused, "Song")
	s2 := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPaused, "Song")

	first := a.Select([]*core.Session{s1, s2})
	for i := 0; i < 10; i++ {
		if got := a.Select([]*core.Session{s1, s2}); got != first {
			t.Fatalf("Select flapped between identical candidates on pass %d", i)
		}
	}
	if first != s1 {
		t.Errorf("Select = %v, want first candidate on a full tie", first)
	}
}

func TestArbiterTitledPausedOutranksUntitledPlaying(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Untitled playback scores zero, so it never displaces a titled
	// paused session regardless of recency.
	paused := sessionWith("org.mpris.MediaPlayer2.a", core.StatusPaused, "Song A")
	untitledPlaying := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPlaying, "")
	untitledPlaying.LastPlayingAt = base.Add(time.Hour)

	if got := a.Select([]*core.Session{paused, untitledPlaying}); got != paused {
		t.Errorf("Select = %v, want the titled paused session", got)
	}
}

func TestArbiterAllowModeExcludesUnlistedWebContent(t *testing.T) {
	a := NewArbiter(NewFilter("allow", []string{"music.example.com"}), "")

	web := sessionWith("org.mpris.MediaPlayer2.chromium", core.StatusPlaying, "Clip")
	web.Meta.URL = "https://videos.example.org/watch?v=1"

	if got := a.Select([]*core.Session{web}); got != nil {
		t.Errorf("Select = %v, want nil for unlisted web content", got)
	}

	allowed := sessionWith("org.mpris.MediaPlayer2.chromium", core.StatusPlaying, "Tune")
	allowed.Meta.URL = "https://music.example.com/track/9"
	if got := a.Select([]*core.Session{web, allowed}); got != allowed {
		t.Errorf("Select = %v, want the allow-listed session", got)
	}
}

func TestArbiterLocalFilesUnaffectedByAllowList(t *testing.T) {
	a := NewArbiter(NewFilter("allow", []string{"music.example.com"}), "")

	local := sessionWith("org.mpris.MediaPlayer2.mpv", core.StatusPlaying, "Song")
	local.Meta.URL = "file:///music/song.flac"

	if got := a.Select([]*core.Session{local}); got != local {
		t.Errorf("Select = %v, want local session despite allow mode", got)
	}
}

func TestArbiterActionLock(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")
	clock := newFakeClock()
	a.now = clock.now

	locked := sessionWith("org.mpris.MediaPlayer2.a", core.StatusPaused, "Song A")
	rival := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPlaying, "Song B")
	candidates := []*core.Session{locked, rival}

	a.NoteAction("org.mpris.MediaPlayer2.a")

	clock.advance(LockWindow - time.Millisecond)
	if got := a.Select(candidates); got != locked {
		t.Errorf("Select = %v inside lock window, want locked session", got)
	}

	clock.advance(2 * time.Millisecond)
	if got := a.Select(candidates); got != rival {
		t.Errorf("Select = %v after lock expiry, want the playing session", got)
	}
}

func TestArbiterLockReleasedWhenSessionGone(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")
	clock := newFakeClock()
	a.now = clock.now

	a.NoteAction("org.mpris.MediaPlayer2.gone")
	survivor := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPlaying, "Song B")

	if got := a.Select([]*core.Session{survivor}); got != survivor {
		t.Errorf("Select = %v, want the surviving session", got)
	}
}

func TestArbiterPinPreemptsEverything(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "org.mpris.MediaPlayer2.a")
	clock := newFakeClock()
	a.now = clock.now

	pinned := sessionWith("org.mpris.MediaPlayer2.a", core.StatusStopped, "")
	playing := sessionWith("org.mpris.MediaPlayer2.b", core.StatusPlaying, "Song B")

	a.NoteAction("org.mpris.MediaPlayer2.b")
	if got := a.Select([]*core.Session{pinned, playing}); got != pinned {
		t.Errorf("Select = %v, want pinned session over lock and score", got)
	}

	// A pin for an absent session falls back to arbitration.
	a.Pin("org.mpris.MediaPlayer2.absent")
	clock.advance(LockWindow + time.Second)
	if got := a.Select([]*core.Session{pinned, playing}); got != playing {
		t.Errorf("Select = %v with absent pin, want the playing session", got)
	}

	a.Pin("")
	if got := a.Select([]*core.Session{pinned, playing}); got != playing {
		t.Errorf("Select = %v after unpin, want the playing session", got)
	}
}

func TestArbiterNoCandidates(t *testing.T) {
	a := NewArbiter(NewFilter("off", nil), "")
	if got := a.Select(nil); got != nil {
		t.Errorf("Select(nil) = %v, want nil", got)
	}
}
