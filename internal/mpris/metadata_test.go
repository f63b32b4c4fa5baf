package mpris

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

func TestDecodeMetadata(t *testing.T) {
	raw := map[string]dbus.Variant{
		"xesam:title":  dbus.MakeVariant("Paranoid Android"),
		"xesam:artist": dbus.MakeVariant([]string{"Radiohead"}),
		"xesam:album":  dbus.MakeVariant("OK Computer"),
		"xesam:url":    dbus.MakeVariant("file:///music/pa.flac"),
		"mpris:artUrl": dbus.MakeVariant("file:///covers/okc.jpg"),
		"mpris:trackid": dbus.MakeVariant(
			dbus.ObjectPath("/org/mpris/MediaPlayer2/Track/7")),
		"mpris:length": dbus.MakeVariant(int64(383_000_000)),
	}

	m := DecodeMetadata(raw)

	if m.Title != "Paranoid Android" {
		t.Errorf("Title = %q", m.Title)
	}
	if len(m.Artists) != 1 || m.Artists[0] != "Radiohead" {
		t.Errorf("Artists = %v", m.Artists)
	}
	if m.Album != "OK Computer" {
		t.Errorf("Album = %q", m.Album)
	}
	if m.TrackID != "/org/mpris/MediaPlayer2/Track/7" {
		t.Errorf("TrackID = %q", m.TrackID)
	}
	if m.Length != 383*time.Second {
		t.Errorf("Length = %v, want %v", m.Length, 383*time.Second)
	}
}

func TestDecodeMetadataLooseTypes(t *testing.T) {
	// Some players send a bare string artist and an unsigned length.
	raw := map[string]dbus.Variant{
		"xesam:artist":  dbus.MakeVariant("Solo Artist"),
		"mpris:trackid": dbus.MakeVariant("/track/1"),
		"mpris:length":  dbus.MakeVariant(uint64(120_000_000)),
	}

	m := DecodeMetadata(raw)

	if len(m.Artists) != 1 || m.Artists[0] != "Solo Artist" {
		t.Errorf("Artists = %v", m.Artists)
	}
	if m.TrackID != "/track/1" {
		t.Errorf("TrackID = %q", m.TrackID)
	}
	if m.Length != 2*time.Minute {
		t.Errorf("Length = %v, want %v", m.Length, 2*time.Minute)
	}
	if m.Title != "" {
		t.Errorf("Title = %q, want empty", m.Title)
	}
}

func TestDecodeMetadataEmpty(t *testing.T) {
	m := DecodeMetadata(map[string]dbus.Variant{})
	if m.HasTitle() || m.Length != 0 || m.Artists != nil {
		t.Errorf("decoded non-zero metadata from empty bag: %+v", m)
	}
}

func TestDecodeDelta(t *testing.T) {
	changed := map[string]dbus.Variant{
		"PlaybackStatus": dbus.MakeVariant("Playing"),
		"Position":       dbus.MakeVariant(int64(42_000_000)),
		"Metadata": dbus.MakeVariant(map[string]dbus.Variant{
			"xesam:title": dbus.MakeVariant("Song"),
		}),
		"Volume": dbus.MakeVariant(0.8),
	}

	delta := DecodeDelta("org.mpris.MediaPlayer2.mpv", changed)

	if delta.BusName != "org.mpris.MediaPlayer2.mpv" {
		t.Errorf("BusName = %q", delta.BusName)
	}
	if delta.Status == nil || *delta.Status != core.StatusPlaying {
		t.Errorf("Status = %v, want Playing", delta.Status)
	}
	if delta.Position == nil || *delta.Position != 42*time.Second {
		t.Errorf("Position = %v, want 42s", delta.Position)
	}
	if delta.Meta == nil || delta.Meta.Title != "Song" {
		t.Errorf("Meta = %+v", delta.Meta)
	}
	if len(delta.Other) != 1 || delta.Other[0] != "Volume" {
		t.Errorf("Other = %v, want [Volume]", delta.Other)
	}
}

func TestDecodeDeltaEmpty(t *testing.T) {
	delta := DecodeDelta("org.mpris.MediaPlayer2.mpv", map[string]dbus.Variant{})
	if !delta.Empty() {
		t.Errorf("delta not empty: %+v", delta)
	}
}
