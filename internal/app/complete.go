package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/session"
)

var (
	completeFlagFocus           int
	completeFlagProductivity    int
	completeFlagEnergyBefore    int
	completeFlagEnergyAfter     int
	completeFlagSatisfaction    int
	completeFlagNotes           string
	completeFlagAccomplishments string
	completeFlagObjectivesDone  string
	completeFlagFlow            bool
	completeFlagFlowMinutes     int
	completeFlagDistraction     string
	completeFlagTasksDone       int
)

var completeCmd = &cobra.Command{
	Use:   "complete [session-id]",
	Short: "Complete the active session with feedback",
	Long: `Finish the active session. All ratings are optional 1-5 scales; flexible
sessions additionally accept flow-state and distraction feedback.

Examples:
  flowtrack complete --focus 4 --satisfaction 5
  flowtrack complete --flow --flow-minutes 40 --distraction minimal
  flowtrack complete --notes "kept getting pulled into review threads"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().IntVar(&completeFlagFocus, "focus", 0, "Focus quality rating (1-5)")
	completeCmd.Flags().IntVar(&completeFlagProductivity, "productivity", 0, "Productivity rating (1-5)")
	completeCmd.Flags().IntVar(&completeFlagEnergyBefore, "energy-before", 0, "Energy before the session (1-5)")
	completeCmd.Flags().IntVar(&completeFlagEnergyAfter, "energy-after", 0, "Energy after the session (1-5)")
	completeCmd.Flags().IntVar(&completeFlagSatisfaction, "satisfaction", 0, "Satisfaction rating (1-5)")
	completeCmd.Flags().StringVar(&completeFlagNotes, "notes", "", "Free-form session notes")
	completeCmd.Flags().StringVar(&completeFlagAccomplishments, "accomplishments", "", "What got done")
	completeCmd.Flags().StringVar(&completeFlagObjectivesDone, "objectives-achieved", "", "Which objectives were met")
	completeCmd.Flags().BoolVar(&completeFlagFlow, "flow", false, "Flow state was achieved")
	completeCmd.Flags().IntVar(&completeFlagFlowMinutes, "flow-minutes", 0, "Minutes spent in flow")
	completeCmd.Flags().StringVar(&completeFlagDistraction, "distraction", "", "Distraction level: minimal, low, moderate, high, overwhelming")
	completeCmd.Flags().IntVar(&completeFlagTasksDone, "tasks-done", 0, "Number of tasks completed")
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.activeUUID(args)
	if err != nil {
		return err
	}

	fb := session.Feedback{
		Notes:              completeFlagNotes,
		Accomplishments:    completeFlagAccomplishments,
		ObjectivesAchieved: completeFlagObjectivesDone,
		FlowStateAchieved:  completeFlagFlow,
		DistractionLevel:   session.DistractionLevel(completeFlagDistraction),
		TasksCompleted:     completeFlagTasksDone,
	}
	setRating := func(dst **int, v int) {
		if v != 0 {
			*dst = &v
		}
	}
	setRating(&fb.FocusQuality, completeFlagFocus)
	setRating(&fb.ProductivityRating, completeFlagProductivity)
	setRating(&fb.EnergyBefore, completeFlagEnergyBefore)
	setRating(&fb.EnergyAfter, completeFlagEnergyAfter)
	setRating(&fb.Satisfaction, completeFlagSatisfaction)
	if completeFlagFlowMinutes > 0 {
		seconds := completeFlagFlowMinutes * 60
		fb.FlowStateDuration = &seconds
	}

	s, err := e.ctl.Complete(e.userID, id, fb)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}

	fmt.Printf(" %s %s session completed\n",
		output.StyleSuccess.Render("✔"), output.StyleBold.Render(string(s.Kind)))
	if s.ActualDuration != nil {
		fmt.Printf(" %s\n", output.StyleMuted.Render("focus time: "+output.Seconds(*s.ActualDuration)))
	}
	if pct := session.CompletionPercentage(s); pct > 0 {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Of plan"), output.PercentBar(pct, 20))
	}
	if ratio, ok := session.EfficiencyRatio(s); ok && s.PauseDuration > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("efficiency: %.0f%% of recorded time was focused", ratio*100)))
	}
	if score, ok := session.ProductivityScore(s); ok {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Productivity"), output.RatingBar(int(score+0.5)))
	}
	if score, ok := session.EffectivenessScore(s); ok {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render("Effectiveness"), output.RatingBar(int(score+0.5)))
	}
	if s.FlowStateAchieved {
		fmt.Printf(" %s\n", output.StyleSuccess.Render("flow state achieved"))
	}
	return nil
}
