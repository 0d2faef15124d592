package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taredo/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task with its dependency neighborhood",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("task ID must be a number: %q", args[0])
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	d, err := e.sess.View(id)
	if err != nil {
		return report(err)
	}

	t := d.Task
	state := "pending"
	if !t.Pending() {
		state = "done"
	}
	fmt.Printf("Task %d: %s\n", t.ID(), t.Description())
	fmt.Printf("  Owner:    %s\n", t.Owner().Name())
	fmt.Printf("  Type:     %s\n", t.Kind())
	fmt.Printf("  Priority: %d\n", t.Priority())
	fmt.Printf("  State:    %s\n", state)
	if t.Kind() == task.KindDeadline {
		fmt.Printf("  Due:      %s (%d days)\n", t.DueAt().Format(task.DueLayout), t.DaysUntilDue())
	}
	fmt.Printf("  Depends on:          %s\n", task.FormatDeps(t.Dependencies()))
	fmt.Printf("  Also depends on:     %s\n", task.FormatDeps(d.IndirectDependencies))

	direct := make([]int, 0, len(d.DirectDependents))
	for _, dep := range d.DirectDependents {
		direct = append(direct, dep.ID())
	}
	fmt.Printf("  Needed by:           %s\n", task.FormatDeps(direct))
	fmt.Printf("  Also needed by:      %s\n", task.FormatDeps(d.IndirectDependents))
	return nil
}
