package config

// FilterMode values accepted by PlayerConfig.FilterMode.
const (
	FilterOff   = "off"
	FilterDeny  = "deny"
	FilterAllow = "allow"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			FilterMode: FilterOff,
		},
		Lyrics: LyricsConfig{
			Enabled:        true,
			ProviderURL:    "https://lrclib.net/api/get",
			TimeoutSeconds: 10,
		},
		Display: DisplayConfig{
			Overflow: "ellipsis",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Player.FilterMode == "" {
		c.Player.FilterMode = d.Player.FilterMode
	}

	if c.Lyrics.ProviderURL == "" {
		c.Lyrics.ProviderURL = d.Lyrics.ProviderURL
	}
	if c.Lyrics.TimeoutSeconds == 0 {
		c.Lyrics.TimeoutSeconds = d.Lyrics.TimeoutSeconds
	}

	if c.Display.Overflow == "" {
		c.Display.Overflow = d.Display.Overflow
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
