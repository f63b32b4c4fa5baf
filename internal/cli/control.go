package cli

import (
	"github.com/spf13/cobra"

	"github.com/Andbal23/dynamic-music-pill/internal/engine"
)

var playPauseCmd = &cobra.Command{
	Use:     "play-pause",
	Aliases: []string{"toggle"},
	Short:   "Toggle playback on the active player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			return eng.TogglePlayback()
		})
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next track on the active player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			return eng.NextTrack()
		})
	},
}

var previousCmd = &cobra.Command{
	Use:     "previous",
	Aliases: []string{"prev"},
	Short:   "Skip to the previous track on the active player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			return eng.PreviousTrack()
		})
	},
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Toggle shuffle on the active player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			return eng.ToggleShuffle()
		})
	},
}

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Cycle the active player's loop mode",
	Long:  "Cycle the loop mode through None, Playlist and Track.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			return eng.ToggleLoop()
		})
	},
}

var raiseCmd = &cobra.Command{
	Use:   "raise",
	Short: "Bring the active player's window to the front",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(eng *engine.Engine) error {
			return eng.RaisePlayer()
		})
	},
}

func init() {
	rootCmd.AddCommand(playPauseCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(previousCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(raiseCmd)
}
