package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
	"github.com/Andbal23/dynamic-music-pill/internal/engine"
	pillerr "github.com/Andbal23/dynamic-music-pill/internal/errors"
	"github.com/Andbal23/dynamic-music-pill/internal/lyrics"
)

var lyricsTimestamps bool

var lyricsCmd = &cobra.Command{
	Use:   "lyrics",
	Short: "Print synced lyrics for the active track",
	RunE:  runLyrics,
}

func init() {
	lyricsCmd.Flags().BoolVarP(&lyricsTimestamps, "timestamps", "t", false, "print line timestamps")
	rootCmd.AddCommand(lyricsCmd)
}

func runLyrics(cmd *cobra.Command, args []string) error {
	return withEngine(func(eng *engine.Engine) error {
		active, ok := eng.ActiveSession()
		if !ok {
			return pillerr.WithSuggestion(pillerr.ErrNoActiveSession,
				"start a media player and try again")
		}
		if !active.Meta.HasTitle() {
			return pillerr.ErrNoLyrics
		}

		client := lyrics.NewClient(cfg.Lyrics.ProviderURL,
			time.Duration(cfg.Lyrics.TimeoutSeconds)*time.Second)
		lines, err := client.Fetch(cmd.Context(), lyrics.Query{
			Title:    active.Meta.Title,
			Artist:   active.Meta.Artist(),
			Album:    active.Meta.Album,
			Duration: active.Meta.Length,
		})
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return pillerr.WithSuggestion(pillerr.ErrNoLyrics,
				"the provider has no synced lyrics for "+active.Meta.Title)
		}

		track := core.LyricTrack{Lines: lines}
		current := track.IndexAt(active.EstimatedPosition(time.Now()))
		for i, line := range lines {
			marker := "  "
			if i == current {
				marker = "> "
			}
			if lyricsTimestamps {
				NormalF("%s[%s] %s", marker, FormatDuration(line.At), line.Text)
			} else {
				NormalF("%s%s", marker, line.Text)
			}
		}
		return nil
	})
}
