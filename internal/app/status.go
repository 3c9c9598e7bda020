package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	active, err := e.ctl.Active(e.userID)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(active)
	}

	fmt.Println(output.Section("Current Session"))
	fmt.Println()
	if active == nil {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No active session."))
		return nil
	}
	renderActive(active)
	fmt.Println()
	return nil
}
