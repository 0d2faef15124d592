package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taredo/internal/task"
)

var createCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Create a task",
	Long: `Create a task owned by the acting user or one of their groups.
With --due the task has a deadline; a pending deadline must lie in the
future. Dependencies must name existing tasks, and an identical task
among the acting user's visible ones is rejected as a duplicate.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	createOwner    string
	createPriority int
	createDone     bool
	createDeps     string
	createDue      string
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createOwner, "owner", "", "owning user or group (default: acting user)")
	createCmd.Flags().IntVar(&createPriority, "priority", 5, "priority, clamped to 1..10")
	createCmd.Flags().BoolVar(&createDone, "done", false, "create the task already completed")
	createCmd.Flags().StringVar(&createDeps, "deps", "-", "comma-separated dependency IDs, or - for none")
	createCmd.Flags().StringVar(&createDue, "due", "", "due date as dd/MM/yyyy:HH:mm")
}

func runCreate(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	own := e.sess.Actor()
	target := own.Name()
	if createOwner != "" {
		target = createOwner
	}
	resolved, err := e.sess.Roster().ResolveOwner(target)
	if err != nil {
		return report(err)
	}

	deps, err := task.ParseDeps(createDeps)
	if err != nil {
		return report(err)
	}

	var created *task.Task
	if createDue != "" {
		due, err := time.ParseInLocation(task.DueLayout, createDue, time.Local)
		if err != nil {
			return fmt.Errorf("bad due date %q: want dd/MM/yyyy:HH:mm", createDue)
		}
		created, err = e.sess.CreateDeadline(resolved, args[0], createPriority, !createDone, deps, due)
		if err != nil {
			return report(err)
		}
	} else {
		created, err = e.sess.CreateSimple(resolved, args[0], createPriority, !createDone, deps)
		if err != nil {
			return report(err)
		}
	}

	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Task %d created.\n", created.ID())
	return nil
}
