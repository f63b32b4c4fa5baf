package engine

import (
	"strings"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
	"github.com/Andbal23/dynamic-music-pill/internal/lyrics"
)

// requeryInterval throttles authoritative position reads issued while
// lyrics are ticking, keeping drift correction off the hot path.
const requeryInterval = time.Second

// LyricLine is a displayable lyric with its remaining lifetime.
type LyricLine struct {
	Text     string
	Duration time.Duration
}

// LyricSync tracks the lyric line matching the active session's
// position. All methods run on the engine loop; asynchronous work goes
// through the injected hooks.
type LyricSync struct {
	enabled bool
	now     func() time.Time

	activeBus string
	fetchSeq  int
	fetchKey  string
	track     core.LyricTrack
	cursor    int

	override    *core.PushedLyric
	lastRequery time.Time

	// fetch starts an asynchronous provider lookup whose completion is
	// delivered back through Complete with the same seq and key.
	fetch   func(seq int, key string, q lyrics.Query)
	emit    func(line LyricLine)
	requery func()
}

// NewLyricSync creates a synchronizer. The hooks must be non-nil.
func NewLyricSync(enabled bool, fetch func(int, string, lyrics.Query), emit func(LyricLine), requery func()) *LyricSync {
	return &LyricSync{
		enabled: enabled,
		now:     time.Now,
		cursor:  -1,
		fetch:   fetch,
		emit:    emit,
		requery: requery,
	}
}

// Enabled reports whether lyric display is on.
func (l *LyricSync) Enabled() bool {
	return l.enabled
}

// Overridden reports whether an external push currently owns the line.
func (l *LyricSync) Overridden() bool {
	return l.override != nil
}

// SetEnabled toggles lyric display. Disabling clears everything,
// including any external override.
func (l *LyricSync) SetEnabled(on bool) {
	if l.enabled == on {
		return
	}
	l.enabled = on
	if !on {
		l.clear()
	}
}

// SyncActive aligns the synchronizer with the current active session.
// Called on every refresh; a nil session clears the display.
func (l *LyricSync) SyncActive(active *core.Session) {
	if !l.enabled {
		return
	}
	if active == nil || !active.Meta.HasTitle() {
		l.clear()
		return
	}

	key := core.TrackKey(active.Meta.Title, active.Meta.Artist())
	if active.BusName == l.activeBus && key == l.fetchKey {
		return
	}

	// A winner change invalidates any external override; the previous
	// sender no longer speaks for the display.
	if active.BusName != l.activeBus {
		l.activeBus = active.BusName
		l.override = nil
	}

	// New session or track. Drop the old lines immediately so stale
	// lyrics never show against the new song while the fetch is in
	// flight.
	l.fetchSeq++
	l.fetchKey = key
	l.track = core.LyricTrack{}
	l.cursor = -1
	if l.override == nil {
		l.emit(LyricLine{})
	}

	l.fetch(l.fetchSeq, key, lyrics.Query{
		Title:    active.Meta.Title,
		Artist:   active.Meta.Artist(),
		Album:    active.Meta.Album,
		Duration: active.Meta.Length,
	})
}

// Complete delivers a finished fetch. Results for anything but the
// latest request are stale and discarded.
func (l *LyricSync) Complete(seq int, key string, lines []core.LyricLine) {
	if !l.enabled || seq != l.fetchSeq || key != l.fetchKey {
		return
	}
	l.track = core.LyricTrack{Key: key, Lines: lines}
	l.cursor = -1
}

// Tick advances the displayed line to match the session's estimated
// position. The poll runs only against audible playback; an external
// override owns the display until it is released.
func (l *LyricSync) Tick(active *core.Session) {
	if !l.enabled || active == nil || l.track.Empty() {
		return
	}
	if l.override != nil || active.Status != core.StatusPlaying {
		return
	}

	now := l.now()
	if now.Sub(l.lastRequery) >= requeryInterval {
		l.lastRequery = now
		l.requery()
	}

	idx := l.track.IndexAt(active.EstimatedPosition(now))
	if idx == l.cursor {
		return
	}
	l.cursor = idx

	if idx < 0 {
		l.emit(LyricLine{})
		return
	}
	l.emit(LyricLine{
		Text:     l.track.Lines[idx].Text,
		Duration: l.track.DisplayDuration(idx),
	})
}

// Push handles an externally supplied lyric line. A non-empty line
// from a sender matching the active session takes over the display;
// an empty or mismatched push clears the line and hands control back
// to polling. Pushes while lyrics are disabled only clear any
// leftover override.
func (l *LyricSync) Push(p core.PushedLyric, activeBus string) {
	if !l.enabled {
		l.override = nil
		return
	}

	if p.Content != "" && p.Sender != "" && strings.Contains(activeBus, p.Sender) {
		pushed := p
		l.override = &pushed
		l.emit(LyricLine{Text: p.Content, Duration: p.Duration})
		return
	}

	// An empty or mismatched push clears whatever is on display; the
	// next poll tick re-emits the position-matched line.
	l.override = nil
	l.cursor = -1
	l.emit(LyricLine{})
}

func (l *LyricSync) clear() {
	l.activeBus = ""
	l.fetchSeq++
	l.fetchKey = ""
	l.track = core.LyricTrack{}
	l.cursor = -1
	l.override = nil
	l.emit(LyricLine{})
}
