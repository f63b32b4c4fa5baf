package engine

import (
	"sort"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

// LockWindow is how long a track-skip action keeps the acting session
// selected, so rapid skipping does not bounce the selection between
// players mid-transition.
const LockWindow = 3 * time.Second

const (
	scorePlaying = 500
	scorePaused  = 100
)

// Arbiter selects the active session from the registry's candidates.
type Arbiter struct {
	filter Filter
	now    func() time.Time

	pinnedBus   string
	lockedBus   string
	lockedUntil time.Time
}

// NewArbiter creates an arbiter. pinnedBus (optional) names a session
// that wins arbitration whenever present.
func NewArbiter(filter Filter, pinnedBus string) *Arbiter {
	return &Arbiter{filter: filter, now: time.Now, pinnedBus: pinnedBus}
}

// Pin overrides automatic selection in favor of one bus name. An empty
// name restores automatic selection.
func (a *Arbiter) Pin(busName string) {
	a.pinnedBus = busName
}

// Pinned returns the currently pinned bus name, if any.
func (a *Arbiter) Pinned() string {
	return a.pinnedBus
}

// NoteAction records a user-initiated track skip on a session, holding
// the selection there for the lock window.
func (a *Arbiter) NoteAction(busName string) {
	a.lockedBus = busName
	a.lockedUntil = a.now().Add(LockWindow)
}

// score rates a session's claim to the display. Sessions actively
// playing something titled rank highest, paused ones next. Web content
// outside the allow list is pushed below the zero line so it never
// beats an idle local player.
func (a *Arbiter) score(s *core.Session) int {
	score := 0
	if s.Meta.HasTitle() {
		switch s.Status {
		case core.StatusPlaying:
			score += scorePlaying
		case core.StatusPaused:
			score += scorePaused
		}
	}
	if a.filter.AllowListActive() && s.Meta.IsWebContent() && !a.filter.AllowsURL(s.Meta.URL) {
		score = -1
	}
	return score
}

// Select picks the active session from the candidates, or nil when
// none qualify. Precedence: manual pin, then action lock, then score.
func (a *Arbiter) Select(candidates []*core.Session) *core.Session {
	if len(candidates) == 0 {
		return nil
	}

	if a.pinnedBus != "" {
		for _, s := range candidates {
			if s.BusName == a.pinnedBus {
				return s
			}
		}
	}

	if a.lockedBus != "" {
		if a.now().Before(a.lockedUntil) {
			for _, s := range candidates {
				if s.BusName == a.lockedBus {
					return s
				}
			}
		}
		// Expired or the session vanished.
		a.lockedBus = ""
	}

	type rated struct {
		session *core.Session
		score   int
	}
	ranked := make([]rated, 0, len(candidates))
	for _, s := range candidates {
		ranked = append(ranked, rated{session: s, score: a.score(s)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].session.LastPlayingAt.After(ranked[j].session.LastPlayingAt)
	})

	best := ranked[0]
	if best.score < 0 {
		return nil
	}

	// When the front-runner is merely paused, prefer a scored session
	// that is actually playing something titled. Untitled playback
	// never outranks a titled candidate.
	if best.session.Status != core.StatusPlaying {
		for _, r := range ranked {
			if r.score > 0 && r.session.Status == core.StatusPlaying && r.session.Meta.HasTitle() {
				return r.session
			}
		}
	}

	return best.session
}
