package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/lifecycle"
	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/session"
)

var (
	startFlagTask       int64
	startFlagMinutes    int
	startFlagMinMinutes int
	startFlagMaxMinutes int
	startFlagObjectives string
	startFlagLocation   string
	startFlagDevice     string
	startFlagSound      string
)

var startCmd = &cobra.Command{
	Use:   "start <kind>",
	Short: "Start a new work session",
	Long: `Start a new session. Interval kinds (work, short_break, long_break) run
against a planned timer from your preferences. Flexible kinds (deep_work,
shallow_work, creative, learning, planning, review) run open-ended within
a minimum/maximum duration band.

Examples:
  flowtrack start work                          # classic 25-minute timer
  flowtrack start deep_work --location home     # open-ended deep work
  flowtrack start creative --minutes 120        # plan two hours
  flowtrack start work --task 3                 # bill time to a task`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().Int64Var(&startFlagTask, "task", 0, "Link the session to a task id")
	startCmd.Flags().IntVar(&startFlagMinutes, "minutes", 0, "Planned duration in minutes (default: per-kind)")
	startCmd.Flags().IntVar(&startFlagMinMinutes, "min", 0, "Minimum duration in minutes (flexible kinds)")
	startCmd.Flags().IntVar(&startFlagMaxMinutes, "max", 0, "Maximum duration in minutes (flexible kinds)")
	startCmd.Flags().StringVar(&startFlagObjectives, "objectives", "", "What you intend to accomplish")
	startCmd.Flags().StringVar(&startFlagLocation, "location", "", "Where you are working")
	startCmd.Flags().StringVar(&startFlagDevice, "device", "", "What you are working on")
	startCmd.Flags().StringVar(&startFlagSound, "sound", "", "Ambient sound, if any")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	opts := lifecycle.StartOptions{
		Objectives:   startFlagObjectives,
		Location:     startFlagLocation,
		Device:       startFlagDevice,
		AmbientSound: startFlagSound,
	}
	if startFlagTask != 0 {
		opts.TaskID = &startFlagTask
	}
	if startFlagMinutes != 0 {
		seconds := startFlagMinutes * 60
		opts.PlannedDuration = &seconds
	}
	if startFlagMinMinutes != 0 {
		seconds := startFlagMinMinutes * 60
		opts.MinimumDuration = &seconds
	}
	if startFlagMaxMinutes != 0 {
		seconds := startFlagMaxMinutes * 60
		opts.MaximumDuration = &seconds
	}

	s, err := e.ctl.Start(e.userID, session.Kind(args[0]), opts)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}

	fmt.Printf(" %s %s session started\n",
		output.StyleSuccess.Render("▶"), output.StyleBold.Render(string(s.Kind)))
	if s.PlannedDuration != nil {
		fmt.Printf(" %s\n", output.StyleMuted.Render("planned: "+output.Seconds(*s.PlannedDuration)))
	}
	if s.Sequence != nil {
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("work session #%d today", *s.Sequence)))
	}
	return nil
}
