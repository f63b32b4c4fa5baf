package core

import "time"

// PropertyDelta is one decoded property-change notification for a
// session. Only the fields present in the notification are non-nil;
// Other lists changed property names the engine has no dedicated
// handling for.
type PropertyDelta struct {
	BusName  string
	Status   *PlaybackStatus
	Position *time.Duration
	Meta     *Metadata
	Other    []string
}

// Empty reports whether the delta carries nothing actionable.
func (d PropertyDelta) Empty() bool {
	return d.Status == nil && d.Position == nil && d.Meta == nil && len(d.Other) == 0
}
