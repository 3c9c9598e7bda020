// Package app contains the Cobra command tree for flowtrack.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/session"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
	flagUser    int64
)

var rootCmd = &cobra.Command{
	Use:   "flowtrack",
	Short: "Work session tracking and productivity analytics",
	Long: `flowtrack tracks timed work sessions: classic work/break intervals and
flexible focus sessions (deep work, creative, learning, planning, review).
It records interruptions and completion feedback, then mines the history
for productivity patterns, flow triggers, and next-session suggestions.

Run 'flowtrack' with no arguments to see the current session and today's
totals.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main. Domain errors (bad input,
// illegal transitions) exit 1; infrastructure failures exit 2.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if session.IsDomainError(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/flowtrack/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().Int64Var(&flagUser, "user", 0, "Act as this user id (default: config user_id)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	active, err := e.ctl.Active(e.userID)
	if err != nil {
		return err
	}
	daily, err := e.stats.Daily(e.userID, time.Now())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"active": active,
			"today":  daily,
		})
	}

	fmt.Println(output.Section("Current Session"))
	fmt.Println()
	if active == nil {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No active session. Start one with 'flowtrack start <kind>'."))
	} else {
		renderActive(active)
	}

	fmt.Println(output.Section("Today"))
	fmt.Println()
	label := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleBold.Render(v))
	}
	label("Sessions", fmt.Sprintf("%d completed / %d total", daily.CompletedSessions, daily.TotalSessions))
	label("Focus time", output.Minutes(daily.FocusMinutes))
	if daily.FlowSessions > 0 {
		label("Flow sessions", fmt.Sprintf("%d", daily.FlowSessions))
	}
	fmt.Println()
	return nil
}

// renderActive prints the one-session summary shared by the dashboard and
// the status command.
func renderActive(s *session.Session) {
	now := time.Now()
	label := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleBold.Render(v))
	}
	muted := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleMuted.Render(v))
	}

	statusStyled := string(s.Status)
	switch s.Status {
	case session.StatusInProgress:
		statusStyled = output.StyleSuccess.Render(statusStyled)
	case session.StatusPaused:
		statusStyled = output.StyleWarning.Render(statusStyled)
	}

	label("Kind", string(s.Kind))
	fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Status"), statusStyled)
	label("Started", s.StartTime.Local().Format("15:04"))
	label("Focus time", output.Seconds(session.ActiveSeconds(s, now)))
	if s.PauseDuration > 0 || s.PausedAt != nil {
		muted("Paused time", output.Seconds(s.PauseDuration))
	}
	if s.PlannedDuration != nil && *s.PlannedDuration > 0 {
		pct := float64(session.ActiveSeconds(s, now)) / float64(*s.PlannedDuration) * 100
		if pct > 100 {
			pct = 100
		}
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Progress"),
			output.PercentBar(pct, 20))
	}
	if s.InterruptionCount > 0 {
		muted("Interruptions", fmt.Sprintf("%d", s.InterruptionCount))
	}
	muted("Session ID", s.UUID)
}
