package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"taredo/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Long:  "Delete a task. Blocked while other tasks depend on it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a task between pending and done",
	Long: `Flip a task's state. Completing requires every dependency to be
done; reopening requires every dependent to still be open.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

var priorityCmd = &cobra.Command{
	Use:   "priority <id> <delta>",
	Short: "Shift a task's priority",
	Long:  "Shift a task's priority by a signed delta, clamped to 1..10.",
	Args:  cobra.ExactArgs(2),
	RunE:  runPriority,
}

var dueCmd = &cobra.Command{
	Use:   "due <id> <dd/MM/yyyy:HH:mm>",
	Short: "Set or move a task's due date",
	Long: `Give a task a due date. A plain task becomes a deadline task in
place, keeping its ID; a deadline task's date moves. While the task is
pending the new date must lie in the future.`,
	Args: cobra.ExactArgs(2),
	RunE: runDue,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(priorityCmd)
	rootCmd.AddCommand(dueCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("task ID must be a number: %q", arg)
	}
	return id, nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.Delete(id); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Task %d deleted.\n", id)
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.ToggleState(id); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	t, err := e.sess.Pool().FindByID(id)
	if err != nil {
		return err
	}
	state := "pending"
	if !t.Pending() {
		state = "done"
	}
	fmt.Printf("Task %d is now %s.\n", id, state)
	return nil
}

func runPriority(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be a number: %q", args[1])
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.AdjustPriority(id, delta); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	t, err := e.sess.Pool().FindByID(id)
	if err != nil {
		return err
	}
	fmt.Printf("Task %d priority is now %d.\n", id, t.Priority())
	return nil
}

func runDue(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	due, err := time.ParseInLocation(task.DueLayout, args[1], time.Local)
	if err != nil {
		return fmt.Errorf("bad due date %q: want dd/MM/yyyy:HH:mm", args[1])
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.SetDueDate(id, due); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Task %d due %s.\n", id, due.Format(task.DueLayout))
	return nil
}
