package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks sessions can bill time to",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with accumulated focus time",
	RunE:  runTaskList,
}

func init() {
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	task := &store.Task{UserID: e.userID, Title: strings.Join(args, " ")}
	if err := e.db.CreateTask(task); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(task)
	}
	fmt.Printf(" %s task #%d added: %s\n",
		output.StyleSuccess.Render("✔"), task.ID, output.StyleBold.Render(task.Title))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	tasks, err := e.db.TasksByUser(e.userID)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(tasks)
	}

	fmt.Println(output.Section("Tasks"))
	fmt.Println()
	if len(tasks) == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No tasks yet. Add one with 'flowtrack task add <title>'."))
		return nil
	}

	tbl := output.NewTable("ID", "Title", "Sessions", "Focus time")
	for _, t := range tasks {
		tbl.AddRow(
			fmt.Sprintf("%d", t.ID),
			t.Title,
			fmt.Sprintf("%d", t.CompletedSessions),
			output.Seconds(t.FocusSeconds),
		)
	}
	tbl.Print()
	fmt.Println()
	return nil
}
