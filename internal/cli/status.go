package cli

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
	"github.com/Andbal23/dynamic-music-pill/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active player and every tracked session",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type sessionStatus struct {
	BusName  string `json:"bus_name"`
	Player   string `json:"player"`
	Status   string `json:"status"`
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Position string `json:"position,omitempty"`
	Length   string `json:"length,omitempty"`
	Active   bool   `json:"active"`
	Pinned   bool   `json:"pinned,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withEngine(func(eng *engine.Engine) error {
		active, hasActive := eng.ActiveSession()
		sessions := eng.Sessions()
		pinned := eng.PinnedBus()

		now := time.Now()
		statuses := make([]sessionStatus, 0, len(sessions))
		for _, s := range sessions {
			st := sessionStatus{
				BusName: s.BusName,
				Player:  s.DisplayName(),
				Status:  string(s.Status),
				Title:   s.Meta.Title,
				Artist:  s.Meta.Artist(),
				Album:   s.Meta.Album,
				Active:  hasActive && s.BusName == active.BusName,
				Pinned:  s.BusName == pinned,
			}
			if s.Meta.HasTitle() {
				st.Position = FormatDuration(s.EstimatedPosition(now))
			}
			if s.Meta.Length > 0 {
				st.Length = FormatDuration(s.Meta.Length)
			}
			statuses = append(statuses, st)
		}

		if JSONOutput() {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(statuses)
		}

		if !hasActive {
			NormalF("No active player session")
		} else {
			printActive(&active, now)
		}

		if len(statuses) > 0 {
			NormalF("")
			table := NewTable("", "PLAYER", "STATUS", "TRACK")
			for _, st := range statuses {
				marker := StatusIcon(st.Active)
				if st.Pinned {
					marker += " ★"
				}
				track := st.Title
				if st.Artist != "" {
					track += " - " + st.Artist
				}
				table.Row(marker, st.Player, st.Status, track)
			}
			table.Flush()
		}
		return nil
	})
}

func printActive(s *core.Session, now time.Time) {
	Normal("Player", s.DisplayName())
	Normal("Status", string(s.Status))
	if s.Meta.HasTitle() {
		Normal("Track", s.Meta.Title)
	}
	if artist := s.Meta.Artist(); artist != "" {
		Normal("Artist", artist)
	}
	if s.Meta.Album != "" {
		Normal("Album", s.Meta.Album)
	}

	pos := s.EstimatedPosition(now)
	if s.Meta.Length > 0 {
		NormalF("Position: %s %s %s",
			FormatDuration(pos),
			FormatProgress(pos, s.Meta.Length, 24),
			FormatDuration(s.Meta.Length))
	} else if s.Meta.HasTitle() {
		Normal("Position", FormatDuration(pos))
	}
}
