package cli

import (
	"time"

	pillerr "github.com/Andbal23/dynamic-music-pill/internal/errors"
	"github.com/Andbal23/dynamic-music-pill/internal/engine"
	"github.com/Andbal23/dynamic-music-pill/internal/lyrics"
	"github.com/Andbal23/dynamic-music-pill/internal/mpris"
)

// connect opens the session bus and assembles an engine around it. The
// returned cleanup closes the bus connection.
func connect() (*engine.Engine, *mpris.Conn, func(), error) {
	conn, err := mpris.Connect()
	if err != nil {
		return nil, nil, nil, pillerr.WithSuggestion(pillerr.ErrNoSessionBus,
			"make sure DBUS_SESSION_BUS_ADDRESS points at a running session bus")
	}

	var provider lyrics.Provider
	if cfg.Lyrics.Enabled {
		provider = lyrics.NewClient(cfg.Lyrics.ProviderURL,
			time.Duration(cfg.Lyrics.TimeoutSeconds)*time.Second)
	}

	eng := engine.New(engine.Options{
		Config: *cfg,
		Lister: conn.ListPlayers,
		Factory: func(busName string) (engine.SessionHandle, error) {
			return conn.Attach(busName)
		},
		Provider: provider,
	})

	return eng, conn, func() { _ = conn.Close() }, nil
}

// withEngine runs a one-shot command against a bootstrapped engine.
func withEngine(fn func(*engine.Engine) error) error {
	eng, _, cleanup, err := connect()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.Bootstrap(); err != nil {
		return err
	}
	return fn(eng)
}
