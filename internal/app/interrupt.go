package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/session"
)

var (
	interruptFlagCause string
	interruptFlagNote  string
	interruptFlagLost  int
)

var interruptCmd = &cobra.Command{
	Use:   "interrupt [session-id]",
	Short: "Log an interruption against the active session",
	Long: `Record that the active session was interrupted. This only counts the
interruption; use 'flowtrack pause' as well if you are stepping away.

Examples:
  flowtrack interrupt --cause external --note "phone call" --lost 3
  flowtrack interrupt --cause self --note "checked twitter"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInterrupt,
}

func init() {
	interruptCmd.Flags().StringVar(&interruptFlagCause, "cause", "external", "Cause: self or external")
	interruptCmd.Flags().StringVar(&interruptFlagNote, "note", "", "What happened")
	interruptCmd.Flags().IntVar(&interruptFlagLost, "lost", 0, "Minutes lost (interval sessions)")
	rootCmd.AddCommand(interruptCmd)
}

func runInterrupt(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.activeUUID(args)
	if err != nil {
		return err
	}
	s, err := e.ctl.LogInterruption(e.userID, id,
		session.InterruptionCause(interruptFlagCause), interruptFlagNote, interruptFlagLost*60)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}
	fmt.Printf(" %s interruption #%d logged\n",
		output.StyleWarning.Render("!"), s.InterruptionCount)
	if s.InterruptionTotalTime > 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("total time lost: "+output.Seconds(s.InterruptionTotalTime)))
	}
	return nil
}
