package engine

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

// SessionHandle is the property-capable handle the engine holds for
// one attached player.
type SessionHandle interface {
	Snapshot() (*core.Session, error)
	Position() (time.Duration, error)

	PlayPause() error
	Next() error
	Previous() error
	Raise() error
	SetShuffle(on bool) error
	SetLoop(mode core.LoopStatus) error

	Close()
}

// HandleFactory obtains a handle for a bus name. Failures are not
// fatal; the candidate is retried on the next reconciliation pass.
type HandleFactory func(busName string) (SessionHandle, error)

type registryEntry struct {
	session *core.Session
	handle  SessionHandle
}

// ApplyOutcome describes what a property delta asks of the caller.
type ApplyOutcome struct {
	Refresh bool
	// RequeryPosition asks for an asynchronous authoritative position
	// read to correct drift after metadata or status changes.
	RequeryPosition bool
}

// Registry owns the set of known player sessions.
type Registry struct {
	factory  HandleFactory
	filter   Filter
	now      func() time.Time
	onRemove func(busName string)

	entries map[string]*registryEntry
}

// NewRegistry creates an empty registry. onRemove (optional) fires for
// every destroyed session.
func NewRegistry(factory HandleFactory, filter Filter, onRemove func(string)) *Registry {
	return &Registry{
		factory:  factory,
		filter:   filter,
		now:      time.Now,
		onRemove: onRemove,
		entries:  make(map[string]*registryEntry),
	}
}

// Reconcile aligns the registry with the full set of names currently
// on the bus, returning whether the tracked set changed.
func (r *Registry) Reconcile(observed []string) bool {
	now := r.now()
	changed := false

	allowed := make(map[string]bool, len(observed))
	for _, name := range observed {
		if !r.filter.AllowsName(name) {
			continue
		}
		allowed[name] = true

		if _, ok := r.entries[name]; ok {
			continue
		}

		handle, err := r.factory(name)
		if err != nil {
			// Not added; the next reconciliation retries.
			logrus.WithField("player", name).Warnf("attach failed: %v", err)
			continue
		}
		session, err := handle.Snapshot()
		if err != nil {
			logrus.WithField("player", name).Warnf("initial read failed: %v", err)
			handle.Close()
			continue
		}

		session.LastSeenAt = now
		session.RawPositionAt = now
		if session.Status == core.StatusPlaying {
			session.LastPlayingAt = now
		}

		r.entries[name] = &registryEntry{session: session, handle: handle}
		changed = true
	}

	for name, e := range r.entries {
		if allowed[name] {
			continue
		}
		e.handle.Close()
		delete(r.entries, name)
		if r.onRemove != nil {
			r.onRemove(name)
		}
		changed = true
	}

	return changed
}

// Apply integrates one property delta into the owning session. A delta
// for an unknown session is stale and ignored.
func (r *Registry) Apply(delta core.PropertyDelta) ApplyOutcome {
	e, ok := r.entries[delta.BusName]
	if !ok {
		return ApplyOutcome{}
	}
	s := e.session
	now := r.now()
	s.LastSeenAt = now

	if delta.Status != nil {
		// Leaving Playing freezes the estimate: fold the elapsed
		// wall-clock time into the raw position first.
		if *delta.Status != core.StatusPlaying && s.Status == core.StatusPlaying {
			s.RawPosition += now.Sub(s.RawPositionAt)
		}
		s.RawPositionAt = now
		if *delta.Status == core.StatusPlaying {
			s.LastPlayingAt = now
		}
		s.Status = *delta.Status
	}

	// A direct position report wins outright; nothing else to do.
	if delta.Position != nil {
		s.RawPosition = *delta.Position
		s.RawPositionAt = now
		return ApplyOutcome{Refresh: true}
	}

	if delta.Meta != nil || delta.Status != nil {
		if delta.Meta != nil {
			if delta.Meta.TrackID != "" && delta.Meta.TrackID != s.Meta.TrackID {
				s.RawPosition = 0
				s.RawPositionAt = now
			}
			s.Meta = *delta.Meta
		}
		return ApplyOutcome{Refresh: true, RequeryPosition: true}
	}

	return ApplyOutcome{Refresh: true}
}

// SetPosition records an authoritative position read. Ignored when the
// session has since disappeared.
func (r *Registry) SetPosition(busName string, pos time.Duration) bool {
	e, ok := r.entries[busName]
	if !ok {
		return false
	}
	e.session.RawPosition = pos
	e.session.RawPositionAt = r.now()
	return true
}

// Get returns the session for a bus name, or nil.
func (r *Registry) Get(busName string) *core.Session {
	if e, ok := r.entries[busName]; ok {
		return e.session
	}
	return nil
}

// Handle returns the handle for a bus name, or nil.
func (r *Registry) Handle(busName string) SessionHandle {
	if e, ok := r.entries[busName]; ok {
		return e.handle
	}
	return nil
}

// Sessions returns all tracked sessions, ordered by bus name so
// repeated arbitration over an unchanged registry is deterministic.
func (r *Registry) Sessions() []*core.Session {
	out := make([]*core.Session, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BusName < out[j].BusName })
	return out
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Close releases every tracked session.
func (r *Registry) Close() {
	for name, e := range r.entries {
		e.handle.Close()
		delete(r.entries, name)
		if r.onRemove != nil {
			r.onRemove(name)
		}
	}
}
