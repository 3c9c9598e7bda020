package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/analytics"
	"github.com/blackwell-systems/flowtrack/internal/output"
)

var patternsFlagDays int

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show when you work best",
	Long: `Bin completed productive sessions by start hour and by weekday, with
average focus quality per bucket, and point out your best slots.`,
	RunE: runPatterns,
}

func init() {
	patternsCmd.Flags().IntVar(&patternsFlagDays, "days", 30, "Number of days to analyze")
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.stats.Patterns(e.userID, patternsFlagDays)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(p)
	}

	fmt.Println(output.Section(fmt.Sprintf("Productivity Patterns (last %d days)", patternsFlagDays)))
	fmt.Println()

	if len(p.Hourly) == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("Not enough completed sessions yet."))
		return nil
	}

	tbl := output.NewTable("Hour", "Sessions", "Focus time", "Avg quality")
	for hour := 0; hour < 24; hour++ {
		b, ok := p.Hourly[hour]
		if !ok {
			continue
		}
		tbl.AddRow(
			fmt.Sprintf("%02d:00", hour),
			fmt.Sprintf("%d", b.Sessions),
			output.Minutes(b.TotalMinutes),
			qualityCell(b),
		)
	}
	tbl.Print()

	fmt.Println()
	wtbl := output.NewTable("Day", "Sessions", "Focus time", "Avg quality")
	for day := 0; day < 7; day++ {
		b, ok := p.Weekday[day]
		if !ok {
			continue
		}
		wtbl.AddRow(
			weekdayNames[day],
			fmt.Sprintf("%d", b.Sessions),
			output.Minutes(b.TotalMinutes),
			qualityCell(b),
		)
	}
	wtbl.Print()

	fmt.Println()
	if p.BestHour != nil {
		fmt.Printf(" %s\n", output.StyleSuccess.Render(
			fmt.Sprintf("Best hour: %02d:00", *p.BestHour)))
	}
	if p.BestWeekday != nil {
		fmt.Printf(" %s\n", output.StyleSuccess.Render(
			"Best day: "+weekdayNames[*p.BestWeekday]))
	}
	fmt.Println()
	return nil
}

func qualityCell(b analytics.Bucket) string {
	if b.AverageQuality == nil {
		return output.StyleMuted.Render("unrated")
	}
	return fmt.Sprintf("%.1f/5", *b.AverageQuality)
}
