package core

import "time"

// DefaultLineDuration is how long the final line of a track stays up,
// since it has no successor to borrow a timestamp from.
const DefaultLineDuration = 5 * time.Second

// LyricLine is one timed line of a synced lyric track.
type LyricLine struct {
	At   time.Duration
	Text string
}

// TrackKey builds the lookup key a lyric track is cached under.
func TrackKey(title, artist string) string {
	return title + "||" + artist
}

// LyricTrack is an ordered sequence of timed lines for one
// title/artist key.
type LyricTrack struct {
	Key   string
	Lines []LyricLine
}

// Empty reports whether the track has no lines.
func (t *LyricTrack) Empty() bool {
	return t == nil || len(t.Lines) == 0
}

// IndexAt returns the index of the last line whose timestamp is at or
// before pos, or -1 if no line is due yet. The scan runs from the end
// backward, matching how positions usually sit near the cursor.
func (t *LyricTrack) IndexAt(pos time.Duration) int {
	if t == nil {
		return -1
	}
	for i := len(t.Lines) - 1; i >= 0; i-- {
		if t.Lines[i].At <= pos {
			return i
		}
	}
	return -1
}

// DisplayDuration returns how long line i should stay displayed: the
// gap to the next line, or DefaultLineDuration for the last one.
func (t *LyricTrack) DisplayDuration(i int) time.Duration {
	if t == nil || i < 0 || i >= len(t.Lines) {
		return 0
	}
	if i+1 < len(t.Lines) {
		return t.Lines[i+1].At - t.Lines[i].At
	}
	return DefaultLineDuration
}

// PushedLyric is a single externally pushed lyric line. A non-empty
// push whose Sender matches the active session takes precedence over
// the engine's own polled output.
type PushedLyric struct {
	Sender   string
	Content  string
	Duration time.Duration
}
