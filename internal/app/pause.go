package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
)

var pauseCmd = &cobra.Command{
	Use:   "pause [session-id]",
	Short: "Pause the active session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume [session-id]",
	Short: "Resume a paused session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.activeUUID(args)
	if err != nil {
		return err
	}
	s, err := e.ctl.Pause(e.userID, id)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}
	fmt.Printf(" %s %s session paused\n",
		output.StyleWarning.Render("⏸"), output.StyleBold.Render(string(s.Kind)))
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.activeUUID(args)
	if err != nil {
		return err
	}
	s, err := e.ctl.Resume(e.userID, id)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}
	fmt.Printf(" %s %s session resumed\n",
		output.StyleSuccess.Render("▶"), output.StyleBold.Render(string(s.Kind)))
	if s.PauseDuration > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("total paused: "+output.Seconds(s.PauseDuration)))
	}
	return nil
}
