package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/analytics"
	"github.com/blackwell-systems/flowtrack/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest the next focus session",
	Long: `Suggest a focus session based on your last 30 days: which mode carries
your highest flow rate, how long your sessions tend to run, and where you
work best.`,
	RunE: runRecommend,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Suggest the next interval session",
	Long: `Suggest the next step in the work/break cadence: work when rested, a
short break after a work session, and a long break after every Nth work
session of the day.`,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(nextCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	rec, err := e.stats.Recommend(e.userID)
	if err != nil {
		return err
	}
	renderRecommendation(rec)
	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	rec, err := e.stats.NextInterval(e.userID)
	if err != nil {
		return err
	}
	renderRecommendation(rec)
	return nil
}

func renderRecommendation(rec analytics.Recommendation) {
	if flagJSON {
		_ = printJSON(rec)
		return
	}

	fmt.Println(output.Section("Suggestion"))
	fmt.Println()
	fmt.Printf(" %s  %s for %s\n",
		output.StyleSuccess.Render("→"),
		output.StyleBold.Render(string(rec.Kind)),
		output.StyleBold.Render(fmt.Sprintf("%d minutes", rec.DurationMinutes)))
	for _, r := range rec.Reasons {
		fmt.Printf("    %s\n", output.StyleMuted.Render(r))
	}
	if len(rec.Tips) > 0 {
		fmt.Println()
		for _, tip := range rec.Tips {
			fmt.Printf(" %s %s\n", output.StyleWarning.Render("tip:"), tip)
		}
	}
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render(
		fmt.Sprintf("Start it with: flowtrack start %s --minutes %d", rec.Kind, rec.DurationMinutes)))
	fmt.Println()
}
