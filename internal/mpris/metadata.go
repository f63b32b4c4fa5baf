package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

// DecodeMetadata converts an MPRIS metadata bag into typed track
// metadata. Players are loose about variant types, so every field is
// decoded defensively and missing or oddly-typed entries are dropped.
func DecodeMetadata(raw map[string]dbus.Variant) core.Metadata {
	return core.Metadata{
		Title:   decodeString(raw, "xesam:title"),
		Artists: decodeStrings(raw, "xesam:artist"),
		Album:   decodeString(raw, "xesam:album"),
		ArtURL:  decodeString(raw, "mpris:artUrl"),
		TrackID: decodeTrackID(raw),
		URL:     decodeString(raw, "xesam:url"),
		Length:  decodeLength(raw, "mpris:length"),
	}
}

func decodeString(raw map[string]dbus.Variant, key string) string {
	variant, ok := raw[key]
	if !ok {
		return ""
	}
	s, _ := variant.Value().(string)
	return s
}

func decodeStrings(raw map[string]dbus.Variant, key string) []string {
	variant, ok := raw[key]
	if !ok {
		return nil
	}
	switch v := variant.Value().(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func decodeTrackID(raw map[string]dbus.Variant) string {
	variant, ok := raw["mpris:trackid"]
	if !ok {
		return ""
	}
	switch v := variant.Value().(type) {
	case dbus.ObjectPath:
		return string(v)
	case string:
		return v
	default:
		return ""
	}
}

// decodeLength reads a track length in microseconds. Players report it
// as various integer widths, a few as a float.
func decodeLength(raw map[string]dbus.Variant, key string) time.Duration {
	variant, ok := raw[key]
	if !ok {
		return 0
	}
	var us int64
	switch v := variant.Value().(type) {
	case int64:
		us = v
	case uint64:
		us = int64(v)
	case int32:
		us = int64(v)
	case uint32:
		us = int64(v)
	case float64:
		us = int64(v)
	default:
		return 0
	}
	if us < 0 {
		return 0
	}
	return time.Duration(us) * time.Microsecond
}
