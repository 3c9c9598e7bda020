package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

var (
	prefsFlagWork       int
	prefsFlagShortBreak int
	prefsFlagLongBreak  int
	prefsFlagCadence    int
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change interval preferences",
	Long: `Show the interval timer preferences. Passing any flag updates and stores
them for the current user.

Examples:
  flowtrack prefs                      # show current settings
  flowtrack prefs --work 50            # 50-minute work sessions
  flowtrack prefs --cadence 3          # long break every 3rd work session`,
	RunE: runPrefs,
}

func init() {
	prefsCmd.Flags().IntVar(&prefsFlagWork, "work", 0, "Work duration in minutes")
	prefsCmd.Flags().IntVar(&prefsFlagShortBreak, "short-break", 0, "Short break duration in minutes")
	prefsCmd.Flags().IntVar(&prefsFlagLongBreak, "long-break", 0, "Long break duration in minutes")
	prefsCmd.Flags().IntVar(&prefsFlagCadence, "cadence", 0, "Work sessions until a long break")
	rootCmd.AddCommand(prefsCmd)
}

func runPrefs(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	defaults := store.Preferences{
		WorkDuration:           e.cfg.Intervals.WorkDuration,
		ShortBreakDuration:     e.cfg.Intervals.ShortBreakDuration,
		LongBreakDuration:      e.cfg.Intervals.LongBreakDuration,
		SessionsUntilLongBreak: e.cfg.Intervals.SessionsUntilLongBreak,
	}
	p, err := e.db.PreferencesFor(e.userID, defaults)
	if err != nil {
		return err
	}

	changed := false
	if prefsFlagWork > 0 {
		p.WorkDuration = prefsFlagWork * 60
		changed = true
	}
	if prefsFlagShortBreak > 0 {
		p.ShortBreakDuration = prefsFlagShortBreak * 60
		changed = true
	}
	if prefsFlagLongBreak > 0 {
		p.LongBreakDuration = prefsFlagLongBreak * 60
		changed = true
	}
	if prefsFlagCadence > 0 {
		p.SessionsUntilLongBreak = prefsFlagCadence
		changed = true
	}
	if changed {
		if err := e.db.SavePreferences(p); err != nil {
			return err
		}
	}

	if flagJSON {
		return printJSON(p)
	}

	fmt.Println(output.Section("Interval Preferences"))
	fmt.Println()
	label := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleBold.Render(v))
	}
	label("Work", output.Seconds(p.WorkDuration))
	label("Short break", output.Seconds(p.ShortBreakDuration))
	label("Long break", output.Seconds(p.LongBreakDuration))
	label("Long break cadence", fmt.Sprintf("every %d work sessions", p.SessionsUntilLongBreak))
	if changed {
		fmt.Println()
		fmt.Printf(" %s\n", output.StyleSuccess.Render("Preferences saved."))
	}
	fmt.Println()
	return nil
}
