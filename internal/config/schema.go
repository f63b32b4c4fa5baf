package config

// Config is the root configuration structure.
type Config struct {
	Player  PlayerConfig  `toml:"player"`
	Lyrics  LyricsConfig  `toml:"lyrics"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// PlayerConfig holds session filtering and arbitration settings.
type PlayerConfig struct {
	// FilterMode is one of "off", "deny" or "allow".
	FilterMode string `toml:"filter_mode"`
	// FilterList is matched case-insensitively as substrings against
	// bus names (and, in allow mode, against web-content URLs).
	FilterList []string `toml:"filter_list"`
	// PinnedBus pins arbitration to one bus name when set.
	PinnedBus string `toml:"pinned_bus"`
	// CompatibilityDelay widens the refresh debounce window for
	// players with slow property propagation.
	CompatibilityDelay bool `toml:"compatibility_delay"`
	// HideDefaultPlayer is passed through to the render layer.
	HideDefaultPlayer bool `toml:"hide_default_player"`
}

// LyricsConfig holds synced-lyrics settings.
type LyricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ProviderURL string `toml:"provider_url"`
	// TimeoutSeconds bounds a single network lookup.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// DisplayConfig holds settings for the terminal display.
type DisplayConfig struct {
	// FallbackArtPath is used when a session has no art reference and
	// none is cached for it.
	FallbackArtPath string `toml:"fallback_art_path"`
	// Width truncates lyric lines; 0 disables truncation.
	Width int `toml:"width"`
	// Overflow is one of "ellipsis", "word" or "none".
	Overflow string `toml:"overflow"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}
