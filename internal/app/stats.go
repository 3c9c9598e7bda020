package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/analytics"
	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/session"
)

var statsFlagDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity statistics",
	Long: `Aggregate completed sessions over a period: totals, completion rate,
focus time, ratings, flow rate, per-mode breakdown, and the current daily
streak.

Examples:
  flowtrack stats              # last 7 days
  flowtrack stats --days 30`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsFlagDays, "days", 7, "Number of days to aggregate")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	summary, err := e.stats.Summary(e.userID, statsFlagDays)
	if err != nil {
		return err
	}
	modes, err := e.stats.Modes(e.userID, statsFlagDays)
	if err != nil {
		return err
	}
	streak, err := e.stats.Streak(e.userID)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"summary": summary,
			"modes":   modes,
			"streak":  streak,
		})
	}

	fmt.Println(output.Section(fmt.Sprintf("Statistics (last %d days)", statsFlagDays)))
	fmt.Println()

	label := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleBold.Render(v))
	}

	label("Sessions", fmt.Sprintf("%d completed / %d abandoned / %d total",
		summary.CompletedSessions, summary.AbandonedSessions, summary.TotalSessions))
	fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Completion rate"),
		output.PercentBar(summary.CompletionRate, 20))
	label("Focus time", output.Minutes(summary.FocusMinutes))
	if summary.AverageSessionMinutes != nil {
		label("Avg session", output.Minutes(*summary.AverageSessionMinutes))
	}
	label("Longest session", output.Minutes(summary.LongestSessionMinutes))
	if summary.AverageFocusQuality != nil {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Avg focus quality"),
			output.RatingBar(int(*summary.AverageFocusQuality+0.5)))
	}
	if summary.AverageSatisfaction != nil {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Avg satisfaction"),
			output.RatingBar(int(*summary.AverageSatisfaction+0.5)))
	}
	if summary.FlowSessions > 0 {
		label("Flow", fmt.Sprintf("%d sessions (%.0f%% of completed)", summary.FlowSessions, summary.FlowRate))
	}
	if summary.AverageInterruptions != nil && *summary.AverageInterruptions > 0 {
		label("Avg interruptions", fmt.Sprintf("%.1f per session", *summary.AverageInterruptions))
	}
	if streak > 0 {
		label("Streak", fmt.Sprintf("%d day(s)", streak))
	}

	if len(modes) > 0 {
		fmt.Println(output.Section("By Mode"))
		fmt.Println()
		renderModes(modes)
	}
	fmt.Println()
	return nil
}

func renderModes(modes map[session.Kind]analytics.ModeStats) {
	kinds := make([]session.Kind, 0, len(modes))
	for k := range modes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	tbl := output.NewTable("Mode", "Sessions", "Total", "Avg", "Flow rate", "Satisfaction")
	for _, k := range kinds {
		m := modes[k]
		satisfaction := ""
		if m.AverageSatisfaction != nil {
			satisfaction = fmt.Sprintf("%.1f/5", *m.AverageSatisfaction)
		}
		flowRate := ""
		if m.FlowSessions > 0 {
			flowRate = fmt.Sprintf("%.0f%%", m.FlowRate)
		}
		tbl.AddRow(
			string(k),
			fmt.Sprintf("%d", m.Sessions),
			output.Minutes(m.TotalMinutes),
			output.Minutes(m.AverageMinutes),
			flowRate,
			satisfaction,
		)
	}
	tbl.Print()
}
