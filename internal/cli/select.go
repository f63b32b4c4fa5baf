package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Andbal23/dynamic-music-pill/internal/config"
	"github.com/Andbal23/dynamic-music-pill/internal/engine"
	pillerr "github.com/Andbal23/dynamic-music-pill/internal/errors"
)

var selectClear bool

var selectCmd = &cobra.Command{
	Use:   "select [bus-name]",
	Short: "Pin arbitration to one player",
	Long: `Select pins the pill to a single player, overriding automatic
arbitration until the pin is cleared. Without an argument it offers an
interactive picker of the players currently on the bus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().BoolVar(&selectClear, "clear", false, "clear the pin and restore automatic selection")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	if selectClear {
		return savePin("")
	}
	if len(args) == 1 {
		return savePin(args[0])
	}

	return withEngine(func(eng *engine.Engine) error {
		sessions := eng.Sessions()
		if len(sessions) == 0 {
			return pillerr.WithSuggestion(pillerr.ErrNoActiveSession,
				"no players are on the bus to pin")
		}

		options := make([]huh.Option[string], 0, len(sessions))
		for _, s := range sessions {
			label := s.DisplayName()
			if s.Meta.HasTitle() {
				label = fmt.Sprintf("%s (%s)", label, s.Meta.Title)
			}
			options = append(options, huh.NewOption(label, s.BusName))
		}

		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pin the pill to a player").
				Options(options...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			return err
		}
		return savePin(choice)
	})
}

// savePin persists the pin so every later invocation honors it.
func savePin(busName string) error {
	cfg.Player.PinnedBus = busName

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	if busName == "" {
		NormalF("Pin cleared, selection is automatic again")
	} else {
		Normal("Pinned", busName)
	}
	return nil
}
