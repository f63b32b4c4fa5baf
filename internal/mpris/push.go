package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

const (
	pushName  = "com.github.musicpill"
	pushPath  = dbus.ObjectPath("/com/github/musicpill")
	pushIface = "com.github.musicpill.Push"
)

// PushSink receives externally pushed state. Both methods may be
// called from the bus goroutine.
type PushSink interface {
	PushLyric(p core.PushedLyric)
	PushLiked(liked bool)
}

type pushReceiver struct {
	sink PushSink
}

// PushLyric receives one lyric line from an external source. Duration
// is in milliseconds; zero means no expiry hint.
func (r pushReceiver) PushLyric(sender, content string, durationMs int64) *dbus.Error {
	r.sink.PushLyric(core.PushedLyric{
		Sender:   sender,
		Content:  content,
		Duration: time.Duration(durationMs) * time.Millisecond,
	})
	return nil
}

// PushLiked receives a liked flag for the current track.
func (r pushReceiver) PushLiked(liked bool) *dbus.Error {
	r.sink.PushLiked(liked)
	return nil
}

// ExportPush claims the push endpoint name and exports its object, so
// external sources can feed lyric lines and liked state into the
// engine. Fails when another instance already owns the name.
func (c *Conn) ExportPush(sink PushSink) error {
	reply, err := c.conn.RequestName(pushName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("request %s: %w", pushName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("%s is already claimed by another instance", pushName)
	}

	recv := pushReceiver{sink: sink}
	if err := c.conn.Export(recv, pushPath, pushIface); err != nil {
		return fmt.Errorf("export push endpoint: %w", err)
	}
	return nil
}
