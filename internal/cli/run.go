package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Andbal23/dynamic-music-pill/internal/tui"
)

var headless bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch players and display the pill",
	Long: `Run connects to the session bus, arbitrates between every MPRIS
player it finds, and displays the winner with a synced lyric line.
With --headless it runs without the terminal UI, which is useful when
another surface reads the state over D-Bus.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	eng, conn, cleanup, err := connect()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := conn.Watch(eng.NotifyNamesChanged, eng.NotifyPropertyChange); err != nil {
		return err
	}

	// External sources (widgets, extensions) feed lyric lines and liked
	// state through the push endpoint. Losing it is not fatal.
	if err := conn.ExportPush(eng); err != nil {
		logrus.Warnf("push endpoint unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- eng.Run(ctx)
	}()

	if headless {
		logrus.Info("running headless, press Ctrl+C to stop")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
			cancel()
			return nil
		case err := <-errCh:
			return err
		}
	}

	if err := tui.Run(eng, *cfg); err != nil {
		return err
	}
	cancel()
	return <-errCh
}
