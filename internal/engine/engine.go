package engine

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Andbal23/dynamic-music-pill/internal/config"
	"github.com/Andbal23/dynamic-music-pill/internal/core"
	pillerr "github.com/Andbal23/dynamic-music-pill/internal/errors"
	"github.com/Andbal23/dynamic-music-pill/internal/lyrics"
)

// tickInterval drives lyric advancement while the engine runs.
const tickInterval = 200 * time.Millisecond

type event interface{ isEvent() }

type namesChanged struct{}
type propertyChanged struct{ delta core.PropertyDelta }
type positionQueried struct {
	busName string
	pos     time.Duration
}
type lyricsFetched struct {
	seq   int
	key   string
	lines []core.LyricLine
}
type tickElapsed struct{}
type refreshDue struct{}
type lyricPushed struct{ push core.PushedLyric }
type lyricsToggled struct{ on bool }
type pinRequested struct{ busName string }
type actionPosted struct {
	fn   func(h SessionHandle, busName string) error
	lock bool
}

func (namesChanged) isEvent()    {}
func (propertyChanged) isEvent() {}
func (positionQueried) isEvent() {}
func (lyricsFetched) isEvent()   {}
func (tickElapsed) isEvent()     {}
func (refreshDue) isEvent()      {}
func (lyricPushed) isEvent()     {}
func (lyricsToggled) isEvent()   {}
func (pinRequested) isEvent()    {}
func (actionPosted) isEvent()    {}

// Options wires an Engine to its environment. Lister and Factory come
// from the bus layer; Provider may be nil to disable network lyrics.
type Options struct {
	Config   config.Config
	Lister   func() ([]string, error)
	Factory  HandleFactory
	Provider lyrics.Provider

	// OnUpdate (optional) fires after every published state change,
	// from the engine goroutine. Keep it cheap.
	OnUpdate func()
}

// snapshot is the engine state published for cross-goroutine readers.
type snapshot struct {
	active   *core.Session
	sessions []core.Session
	line     LyricLine
	art      string
	pinned   string
	lyricsOn bool
	liked    bool
}

// Engine is the session arbitration core. A single goroutine (Run)
// owns all mutable state; other goroutines talk to it through events
// and read the published snapshot through the getters.
type Engine struct {
	list     func() ([]string, error)
	provider lyrics.Provider
	onUpdate func()
	now      func() time.Time

	reg  *Registry
	arb  *Arbiter
	art  *ArtCache
	lyr  *LyricSync
	disp *Dispatcher

	activeBus string

	events chan event
	mu     sync.Mutex
	// running marks the loop as live; done is closed when it exits so
	// posters stuck on a full queue are released.
	running bool
	done    chan struct{}
	pub     snapshot
}

// New assembles an engine from options. Call Bootstrap or Run before
// reading state.
func New(opts Options) *Engine {
	e := &Engine{
		list:     opts.Lister,
		provider: opts.Provider,
		onUpdate: opts.OnUpdate,
		now:      time.Now,
		events:   make(chan event, 64),
	}

	filter := NewFilter(opts.Config.Player.FilterMode, opts.Config.Player.FilterList)
	e.art = NewArtCache(opts.Config.Display.FallbackArtPath)
	e.reg = NewRegistry(opts.Factory, filter, e.art.Remove)
	e.arb = NewArbiter(filter, opts.Config.Player.PinnedBus)
	e.disp = NewDispatcher(opts.Config.Player.CompatibilityDelay, func() {
		e.post(refreshDue{})
	})
	e.lyr = NewLyricSync(opts.Config.Lyrics.Enabled, e.startFetch, e.publishLine, func() {
		e.requeryPosition(e.activeBus)
	})
	e.pub.lyricsOn = opts.Config.Lyrics.Enabled

	return e
}

// Bootstrap performs one synchronous discovery and refresh pass. CLI
// one-shots use it instead of Run.
func (e *Engine) Bootstrap() error {
	names, err := e.list()
	if err != nil {
		return pillerr.WithSuggestion(err, "check that a D-Bus session bus is available")
	}
	e.reg.Reconcile(names)
	e.refresh()
	return nil
}

// Run bootstraps and then processes events until ctx is canceled.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Bootstrap(); err != nil {
		return err
	}

	e.setRunning(true)
	defer e.setRunning(false)
	defer e.disp.Stop()
	defer e.reg.Close()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.handle(tickElapsed{})
		case ev := <-e.events:
			e.handle(ev)
		}
	}
}

func (e *Engine) setRunning(on bool) {
	e.mu.Lock()
	if on {
		e.done = make(chan struct{})
	} else if e.done != nil {
		close(e.done)
		e.done = nil
	}
	e.running = on
	e.mu.Unlock()
}

// post delivers an event to the engine loop, or handles it inline when
// the loop is not running (Bootstrap-mode one-shots).
func (e *Engine) post(ev event) {
	e.mu.Lock()
	running, done := e.running, e.done
	e.mu.Unlock()
	if running {
		select {
		case e.events <- ev:
		case <-done:
		}
		return
	}
	e.handle(ev)
}

func (e *Engine) handle(ev event) {
	switch ev := ev.(type) {
	case namesChanged:
		names, err := e.list()
		if err != nil {
			logrus.Warnf("listing players failed: %v", err)
			return
		}
		if e.reg.Reconcile(names) {
			e.refresh()
		}

	case propertyChanged:
		out := e.reg.Apply(ev.delta)
		if out.RequeryPosition {
			e.requeryPosition(ev.delta.BusName)
		}
		if out.Refresh {
			e.disp.Trigger()
		}

	case positionQueried:
		e.reg.SetPosition(ev.busName, ev.pos)

	case lyricsFetched:
		e.lyr.Complete(ev.seq, ev.key, ev.lines)

	case tickElapsed:
		e.lyr.Tick(e.reg.Get(e.activeBus))

	case refreshDue:
		e.refresh()

	case lyricPushed:
		e.lyr.Push(ev.push, e.activeBus)

	case lyricsToggled:
		e.lyr.SetEnabled(ev.on)
		e.mu.Lock()
		e.pub.lyricsOn = ev.on
		e.mu.Unlock()
		if ev.on {
			e.lyr.SyncActive(e.reg.Get(e.activeBus))
		}
		e.notify()

	case pinRequested:
		e.arb.Pin(ev.busName)
		e.refresh()

	case actionPosted:
		if err := e.runAction(ev.fn, ev.lock); err != nil {
			logrus.Warnf("player action failed: %v", err)
		}
	}
}

// refresh re-arbitrates the active session and publishes the result.
func (e *Engine) refresh() {
	candidates := e.reg.Sessions()
	active := e.arb.Select(candidates)

	e.activeBus = ""
	art := ""
	if active != nil {
		e.activeBus = active.BusName
		art = e.art.Resolve(active.BusName, active.Meta.ArtURL)
	}

	e.lyr.SyncActive(active)

	e.mu.Lock()
	if active != nil {
		c := *active
		e.pub.active = &c
	} else {
		e.pub.active = nil
	}
	e.pub.art = art
	e.pub.pinned = e.arb.Pinned()
	e.pub.sessions = e.pub.sessions[:0]
	for _, s := range candidates {
		e.pub.sessions = append(e.pub.sessions, *s)
	}
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) publishLine(line LyricLine) {
	e.mu.Lock()
	e.pub.line = line
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) notify() {
	if e.onUpdate != nil {
		e.onUpdate()
	}
}

// requeryPosition reads the authoritative position off the loop and
// posts the result back as an event.
func (e *Engine) requeryPosition(busName string) {
	h := e.reg.Handle(busName)
	if h == nil {
		return
	}
	go func() {
		pos, err := h.Position()
		if err != nil {
			logrus.Debugf("position query for %s failed: %v", busName, err)
			return
		}
		e.post(positionQueried{busName: busName, pos: pos})
	}()
}

// startFetch launches a provider lookup whose result returns through
// the lyricsFetched event.
func (e *Engine) startFetch(seq int, key string, q lyrics.Query) {
	if e.provider == nil {
		return
	}
	go func() {
		lines, err := e.provider.Fetch(context.Background(), q)
		if err != nil {
			logrus.Debugf("lyric fetch for %q failed: %v", q.Title, err)
			return
		}
		e.post(lyricsFetched{seq: seq, key: key, lines: lines})
	}()
}

// NotifyNamesChanged reports that the set of bus names may have
// changed. Safe from any goroutine.
func (e *Engine) NotifyNamesChanged() {
	e.post(namesChanged{})
}

// NotifyPropertyChange delivers a property delta observed on the bus.
// Safe from any goroutine.
func (e *Engine) NotifyPropertyChange(delta core.PropertyDelta) {
	if delta.Empty() {
		return
	}
	e.post(propertyChanged{delta: delta})
}

// PushLyric delivers an externally supplied lyric line. Safe from any
// goroutine.
func (e *Engine) PushLyric(p core.PushedLyric) {
	e.post(lyricPushed{push: p})
}

// PushLiked records an externally supplied liked flag for the current
// track. The engine only relays it to readers.
func (e *Engine) PushLiked(liked bool) {
	e.mu.Lock()
	e.pub.liked = liked
	e.mu.Unlock()
	e.notify()
}

// SetLyricsEnabled toggles lyric display. Safe from any goroutine.
func (e *Engine) SetLyricsEnabled(on bool) {
	e.post(lyricsToggled{on: on})
}

// Pin selects a session manually; empty restores automatic selection.
// Safe from any goroutine.
func (e *Engine) Pin(busName string) {
	e.post(pinRequested{busName: busName})
}

func (e *Engine) do(fn func(h SessionHandle, busName string) error, lock bool) error {
	e.mu.Lock()
	running, done := e.running, e.done
	e.mu.Unlock()
	if running {
		select {
		case e.events <- actionPosted{fn: fn, lock: lock}:
		case <-done:
			// The loop exited mid-post; the action is moot.
		}
		return nil
	}
	return e.runAction(fn, lock)
}

func (e *Engine) runAction(fn func(h SessionHandle, busName string) error, lock bool) error {
	busName := e.activeBus
	if busName == "" {
		return pillerr.WithSuggestion(pillerr.ErrNoActiveSession,
			"start a media player or check your player filter")
	}
	h := e.reg.Handle(busName)
	if h == nil {
		return pillerr.ErrSessionGone
	}
	if lock {
		e.arb.NoteAction(busName)
	}
	return fn(h, busName)
}

// TogglePlayback toggles play/pause on the active session.
func (e *Engine) TogglePlayback() error {
	return e.do(func(h SessionHandle, _ string) error { return h.PlayPause() }, false)
}

// NextTrack skips forward on the active session and locks selection to
// it for the lock window.
func (e *Engine) NextTrack() error {
	return e.do(func(h SessionHandle, _ string) error { return h.Next() }, true)
}

// PreviousTrack skips backward on the active session and locks
// selection to it for the lock window.
func (e *Engine) PreviousTrack() error {
	return e.do(func(h SessionHandle, _ string) error { return h.Previous() }, true)
}

// RaisePlayer asks the active session's player to surface its UI.
func (e *Engine) RaisePlayer() error {
	return e.do(func(h SessionHandle, _ string) error { return h.Raise() }, false)
}

// ToggleShuffle flips shuffle on the active session.
func (e *Engine) ToggleShuffle() error {
	return e.do(func(h SessionHandle, busName string) error {
		s := e.reg.Get(busName)
		if s == nil {
			return pillerr.ErrSessionGone
		}
		return h.SetShuffle(!s.Shuffle)
	}, false)
}

// ToggleLoop advances the active session's loop mode one step through
// the None, Playlist, Track cycle.
func (e *Engine) ToggleLoop() error {
	return e.do(func(h SessionHandle, busName string) error {
		s := e.reg.Get(busName)
		if s == nil {
			return pillerr.ErrSessionGone
		}
		return h.SetLoop(s.Loop.Next())
	}, false)
}

// ActiveSession returns a copy of the active session, if any.
func (e *Engine) ActiveSession() (core.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pub.active == nil {
		return core.Session{}, false
	}
	return *e.pub.active, true
}

// Sessions returns copies of every tracked session, ordered by bus
// name.
func (e *Engine) Sessions() []core.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.Session, len(e.pub.sessions))
	copy(out, e.pub.sessions)
	return out
}

// CurrentLine returns the lyric line currently on display.
func (e *Engine) CurrentLine() LyricLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pub.line
}

// ArtURL returns the resolved art reference for the active session.
func (e *Engine) ArtURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pub.art
}

// PinnedBus returns the bus name selection is pinned to, if any.
func (e *Engine) PinnedBus() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pub.pinned
}

// LyricsEnabled reports whether lyric display is on.
func (e *Engine) LyricsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pub.lyricsOn
}

// Liked returns the last externally pushed liked flag.
func (e *Engine) Liked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pub.liked
}

// EstimatedPosition returns the active session's estimated playback
// position right now, and whether there is an active session.
func (e *Engine) EstimatedPosition() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pub.active == nil {
		return 0, false
	}
	return e.pub.active.EstimatedPosition(e.now()), true
}
