package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
)

var abandonFlagReason string

var abandonCmd = &cobra.Command{
	Use:   "abandon [session-id]",
	Short: "Abandon the active session",
	Long: `End the active session without completing it. The partial focus time is
kept on record so daily totals stay honest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAbandon,
}

func init() {
	abandonCmd.Flags().StringVar(&abandonFlagReason, "reason", "", "Why the session is being abandoned")
	rootCmd.AddCommand(abandonCmd)
}

func runAbandon(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.activeUUID(args)
	if err != nil {
		return err
	}
	s, err := e.ctl.Abandon(e.userID, id, abandonFlagReason)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}
	fmt.Printf(" %s %s session abandoned\n",
		output.StyleError.Render("✘"), output.StyleBold.Render(string(s.Kind)))
	if s.ActualDuration != nil && *s.ActualDuration > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("partial focus time kept: "+output.Seconds(*s.ActualDuration)))
	}
	return nil
}
