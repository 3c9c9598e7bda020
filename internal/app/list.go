package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/session"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

var (
	listFlagDays   int
	listFlagKind   string
	listFlagStatus string
	listFlagLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Long: `Browse recent sessions, newest first.

Examples:
  flowtrack list                        # last 7 days
  flowtrack list --days 30 --limit 20
  flowtrack list --kind deep_work
  flowtrack list --status abandoned`,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listFlagDays, "days", 7, "Number of days to look back")
	listCmd.Flags().StringVar(&listFlagKind, "kind", "", "Filter by session kind")
	listCmd.Flags().StringVar(&listFlagStatus, "status", "", "Filter by status")
	listCmd.Flags().IntVar(&listFlagLimit, "limit", 25, "Maximum sessions to display")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	now := time.Now()
	sessions, err := e.db.SessionsInRange(e.userID, now.AddDate(0, 0, -listFlagDays), now, store.Filter{
		Kind:   session.Kind(listFlagKind),
		Status: session.Status(listFlagStatus),
		Limit:  listFlagLimit,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(sessions)
	}

	fmt.Println(output.Section("Sessions"))
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No sessions found matching filters."))
		return nil
	}

	tbl := output.NewTable("Date", "Kind", "Status", "Focus", "Intr", "Quality", "Flow")
	for i := range sessions {
		s := &sessions[i]

		focus := output.Dash()
		if s.ActualDuration != nil {
			focus = output.Seconds(*s.ActualDuration)
		}

		statusStyled := string(s.Status)
		switch s.Status {
		case session.StatusCompleted:
			statusStyled = output.StyleSuccess.Render(statusStyled)
		case session.StatusAbandoned:
			statusStyled = output.StyleError.Render(statusStyled)
		case session.StatusPaused:
			statusStyled = output.StyleWarning.Render(statusStyled)
		}

		quality := output.Dash()
		if s.FocusQuality != nil {
			quality = fmt.Sprintf("%d/5", *s.FocusQuality)
		}
		flow := output.Dash()
		if s.FlowStateAchieved {
			flow = output.StyleSuccess.Render("✔")
		}
		intr := output.Dash()
		if s.InterruptionCount > 0 {
			intr = fmt.Sprintf("%d", s.InterruptionCount)
			if s.InterruptionCount > 2 {
				intr = output.StyleWarning.Render(intr)
			}
		}

		tbl.AddRow(
			s.StartTime.Local().Format("Jan 02 15:04"),
			string(s.Kind),
			statusStyled,
			focus,
			intr,
			quality,
			flow,
		)
	}
	tbl.Print()

	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render("Use --kind, --status, --days to filter; --json for machine output"))
	return nil
}
