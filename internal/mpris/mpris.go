// Package mpris is the session-bus boundary: it enumerates MPRIS
// players, attaches property-capable handles to them, and translates
// bus signals into typed notifications for the engine.
package mpris

import (
	"fmt"
	"sync"
	"time"

	gompris "github.com/Pauloo27/go-mpris"
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

const (
	// BusPrefix is the well-known name prefix every MPRIS player claims.
	BusPrefix = "org.mpris.MediaPlayer2."

	objectPath      = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	baseInterface   = "org.mpris.MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
	propsInterface  = "org.freedesktop.DBus.Properties"
)

// Conn wraps a session-bus connection and tracks which unique bus
// owner belongs to which attached player, so property signals can be
// routed back to the right session.
type Conn struct {
	conn *dbus.Conn

	mu     sync.Mutex
	owners map[string]string // unique owner -> well-known name

	sigs chan *dbus.Signal
	done chan struct{}
}

// Connect opens the session bus.
func Connect() (*Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Conn{
		conn:   conn,
		owners: make(map[string]string),
		done:   make(chan struct{}),
	}, nil
}

// Close tears down the signal watch and the bus connection.
func (c *Conn) Close() error {
	close(c.done)
	return c.conn.Close()
}

// ListPlayers returns the well-known names of all MPRIS players
// currently on the bus.
func (c *Conn) ListPlayers() ([]string, error) {
	names, err := gompris.List(c.conn)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return names, nil
}

// Watch subscribes to name-ownership and player property signals.
// onNames fires whenever bus names may have changed; onDelta delivers
// decoded property changes for attached players. Both callbacks run on
// the watch goroutine.
func (c *Conn) Watch(onNames func(), onDelta func(core.PropertyDelta)) error {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		return fmt.Errorf("match NameOwnerChanged: %w", err)
	}
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchObjectPath(objectPath),
	); err != nil {
		return fmt.Errorf("match PropertiesChanged: %w", err)
	}
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchInterface(playerInterface),
		dbus.WithMatchMember("Seeked"),
		dbus.WithMatchObjectPath(objectPath),
	); err != nil {
		return fmt.Errorf("match Seeked: %w", err)
	}

	c.sigs = make(chan *dbus.Signal, 64)
	c.conn.Signal(c.sigs)

	go c.watchLoop(onNames, onDelta)
	return nil
}

func (c *Conn) watchLoop(onNames func(), onDelta func(core.PropertyDelta)) {
	for {
		select {
		case <-c.done:
			return
		case sig, ok := <-c.sigs:
			if !ok {
				return
			}
			switch sig.Name {
			case "org.freedesktop.DBus.NameOwnerChanged":
				c.handleNameOwnerChanged(sig)
				onNames()
			case propsInterface + ".PropertiesChanged":
				if delta, ok := c.decodePropertiesChanged(sig); ok {
					onDelta(delta)
				}
			case playerInterface + ".Seeked":
				if delta, ok := c.decodeSeeked(sig); ok {
					onDelta(delta)
				}
			}
		}
	}
}

func (c *Conn) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) != 3 {
		return
	}
	name, _ := sig.Body[0].(string)
	newOwner, _ := sig.Body[2].(string)

	c.mu.Lock()
	defer c.mu.Unlock()
	for owner, known := range c.owners {
		if known == name && owner != newOwner {
			delete(c.owners, owner)
		}
	}
	if newOwner != "" {
		if _, tracked := c.lookupLocked(name); tracked {
			c.owners[newOwner] = name
		}
	}
}

func (c *Conn) lookupLocked(name string) (string, bool) {
	for owner, known := range c.owners {
		if known == name {
			return owner, true
		}
	}
	return "", false
}

func (c *Conn) decodePropertiesChanged(sig *dbus.Signal) (core.PropertyDelta, bool) {
	if len(sig.Body) < 2 {
		return core.PropertyDelta{}, false
	}
	iface, _ := sig.Body[0].(string)
	if iface != playerInterface {
		return core.PropertyDelta{}, false
	}
	changed, _ := sig.Body[1].(map[string]dbus.Variant)
	if changed == nil {
		return core.PropertyDelta{}, false
	}

	c.mu.Lock()
	busName, tracked := c.owners[sig.Sender]
	c.mu.Unlock()
	if !tracked {
		return core.PropertyDelta{}, false
	}

	return DecodeDelta(busName, changed), true
}

func (c *Conn) decodeSeeked(sig *dbus.Signal) (core.PropertyDelta, bool) {
	if len(sig.Body) != 1 {
		return core.PropertyDelta{}, false
	}
	us, ok := sig.Body[0].(int64)
	if !ok {
		return core.PropertyDelta{}, false
	}

	c.mu.Lock()
	busName, tracked := c.owners[sig.Sender]
	c.mu.Unlock()
	if !tracked {
		return core.PropertyDelta{}, false
	}

	pos := time.Duration(us) * time.Microsecond
	return core.PropertyDelta{BusName: busName, Position: &pos}, true
}

// DecodeDelta converts a raw PropertiesChanged payload into a typed
// delta for the given player.
func DecodeDelta(busName string, changed map[string]dbus.Variant) core.PropertyDelta {
	delta := core.PropertyDelta{BusName: busName}

	for key, variant := range changed {
		switch key {
		case "PlaybackStatus":
			if s, ok := variant.Value().(string); ok {
				status := core.PlaybackStatus(s)
				delta.Status = &status
			}
		case "Position":
			if us, ok := variant.Value().(int64); ok {
				pos := time.Duration(us) * time.Microsecond
				delta.Position = &pos
			}
		case "Metadata":
			if raw, ok := variant.Value().(map[string]dbus.Variant); ok {
				meta := DecodeMetadata(raw)
				delta.Meta = &meta
			}
		default:
			delta.Other = append(delta.Other, key)
		}
	}

	return delta
}

// Attach obtains a property-capable handle for one player and
// registers its owner for signal routing.
func (c *Conn) Attach(busName string) (*Handle, error) {
	var owner string
	err := c.conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, busName).Store(&owner)
	if err != nil {
		return nil, fmt.Errorf("resolve owner of %s: %w", busName, err)
	}

	c.mu.Lock()
	c.owners[owner] = busName
	c.mu.Unlock()

	return &Handle{
		conn:    c,
		busName: busName,
		player:  gompris.New(c.conn, busName),
		obj:     c.conn.Object(busName, objectPath),
	}, nil
}

// Handle is one attached player: property reads with microsecond
// precision plus remote transport actions.
type Handle struct {
	conn    *Conn
	busName string
	player  *gompris.Player
	obj     dbus.BusObject
}

// BusName returns the player's well-known bus name.
func (h *Handle) BusName() string {
	return h.busName
}

// Snapshot reads the player's current state in one pass. Fields that
// fail to read individually are left at their zero value; only a
// wholly failed read is an error.
func (h *Handle) Snapshot() (*core.Session, error) {
	var props map[string]dbus.Variant
	err := h.obj.Call(propsInterface+".GetAll", 0, playerInterface).Store(&props)
	if err != nil {
		return nil, fmt.Errorf("read properties of %s: %w", h.busName, err)
	}

	s := &core.Session{BusName: h.busName, Loop: core.LoopNone}

	if v, ok := props["PlaybackStatus"]; ok {
		if status, ok := v.Value().(string); ok {
			s.Status = core.PlaybackStatus(status)
		}
	}
	if v, ok := props["Metadata"]; ok {
		if raw, ok := v.Value().(map[string]dbus.Variant); ok {
			s.Meta = DecodeMetadata(raw)
		}
	}
	if v, ok := props["Shuffle"]; ok {
		s.Shuffle, _ = v.Value().(bool)
	}
	if v, ok := props["LoopStatus"]; ok {
		if loop, ok := v.Value().(string); ok {
			s.Loop = core.LoopStatus(loop)
		}
	}
	if v, ok := props["Volume"]; ok {
		s.Volume, _ = v.Value().(float64)
	}
	if v, ok := props["Position"]; ok {
		if us, ok := v.Value().(int64); ok && us > 0 {
			s.RawPosition = time.Duration(us) * time.Microsecond
		}
	}

	// Identity and DesktopEntry live on the base interface; best effort.
	var baseProps map[string]dbus.Variant
	if err := h.obj.Call(propsInterface+".GetAll", 0, baseInterface).Store(&baseProps); err == nil {
		if v, ok := baseProps["Identity"]; ok {
			s.Identity, _ = v.Value().(string)
		}
		if v, ok := baseProps["DesktopEntry"]; ok {
			s.DesktopEntry, _ = v.Value().(string)
		}
	} else {
		logrus.WithField("player", h.busName).Debugf("base properties unavailable: %v", err)
	}

	return s, nil
}

// Position re-queries the authoritative playback position.
func (h *Handle) Position() (time.Duration, error) {
	v, err := h.obj.GetProperty(playerInterface + ".Position")
	if err != nil {
		return 0, fmt.Errorf("read position of %s: %w", h.busName, err)
	}
	us, ok := v.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected position type %T from %s", v.Value(), h.busName)
	}
	if us < 0 {
		us = 0
	}
	return time.Duration(us) * time.Microsecond, nil
}

// PlayPause toggles playback.
func (h *Handle) PlayPause() error {
	return h.player.PlayPause()
}

// Next skips to the next track.
func (h *Handle) Next() error {
	return h.player.Next()
}

// Previous skips to the previous track.
func (h *Handle) Previous() error {
	return h.player.Previous()
}

// Raise asks the player application to present itself.
func (h *Handle) Raise() error {
	return h.player.Raise()
}

// SetShuffle sets the player's shuffle mode.
func (h *Handle) SetShuffle(on bool) error {
	return h.setProperty("Shuffle", dbus.MakeVariant(on))
}

// SetLoop sets the player's loop mode.
func (h *Handle) SetLoop(mode core.LoopStatus) error {
	return h.setProperty("LoopStatus", dbus.MakeVariant(string(mode)))
}

func (h *Handle) setProperty(name string, value dbus.Variant) error {
	call := h.obj.Call(propsInterface+".Set", 0, playerInterface, name, value)
	if call.Err != nil {
		return fmt.Errorf("set %s on %s: %w", name, h.busName, call.Err)
	}
	return nil
}

// Close releases the handle's signal routing entry.
func (h *Handle) Close() {
	h.conn.mu.Lock()
	defer h.conn.mu.Unlock()
	for owner, known := range h.conn.owners {
		if known == h.busName {
			delete(h.conn.owners, owner)
		}
	}
}
