package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/watcher"
)

var (
	watchFlagInterval time.Duration
	watchFlagNotify   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the active session and alert on timer boundaries",
	Long: `Poll the active session and alert when the planned timer elapses, when a
flexible session crosses its minimum or maximum, or when a pause is left
running. Runs until interrupted.

Examples:
  flowtrack watch                 # print alerts to the terminal
  flowtrack watch --notify        # also send desktop notifications`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlagInterval, "interval", 15*time.Second, "Poll interval")
	watchCmd.Flags().BoolVar(&watchFlagNotify, "notify", false, "Send desktop notifications")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	alertFn := func(a watcher.Alert) {
		style := output.StyleBold
		if a.Level == "warning" {
			style = output.StyleWarning
		}
		fmt.Printf(" %s %s  %s\n",
			output.StyleMuted.Render(a.Time.Local().Format("15:04:05")),
			style.Render(a.Title),
			a.Message)
		if watchFlagNotify {
			_ = watcher.Notify(a)
		}
	}

	fmt.Printf(" %s\n", output.StyleMuted.Render(
		fmt.Sprintf("Watching every %s. Press Ctrl-C to stop.", watchFlagInterval)))

	w := watcher.New(e.db, e.userID, watchFlagInterval, alertFn)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
