package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
)

var flowFlagDays int

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Show what triggers your flow state",
	Long: `Mine sessions that achieved flow state for the conditions they share:
which mode, which location, and which session length show up most often.`,
	RunE: runFlow,
}

func init() {
	flowCmd.Flags().IntVar(&flowFlagDays, "days", 30, "Number of days to analyze")
	rootCmd.AddCommand(flowCmd)
}

func runFlow(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	fa, err := e.stats.Flow(e.userID, flowFlagDays)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(fa)
	}

	fmt.Println(output.Section(fmt.Sprintf("Flow Analysis (last %d days)", flowFlagDays)))
	fmt.Println()

	if fa.FlowSessions == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render(
			"No flow sessions recorded yet. Use 'flowtrack complete --flow' when it happens."))
		return nil
	}

	label := func(l, v string) {
		fmt.Printf(" %s  %s\n", output.StyleLabel.Render(l), output.StyleBold.Render(v))
	}
	label("Flow sessions", fmt.Sprintf("%d", fa.FlowSessions))
	if fa.TotalFlowMinutes > 0 {
		label("Time in flow", output.Minutes(fa.TotalFlowMinutes))
		label("Avg per session", output.Minutes(fa.AverageFlowMinutes))
	}
	if fa.BestKind != "" {
		label("Best mode", string(fa.BestKind))
	}
	if fa.BestLocation != "" {
		label("Best location", fa.BestLocation)
	}
	if fa.BestDurationBand != "" {
		label("Best length", describeBand(fa.BestDurationBand))
	}

	fmt.Println()
	return nil
}

func describeBand(band string) string {
	switch band {
	case "short":
		return "under an hour"
	case "medium":
		return "one to two hours"
	case "long":
		return "over two hours"
	}
	return band
}
