package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taredo/internal/task"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the acting user's tasks",
	Long: `List the tasks the acting user can act on: their own tasks plus
those owned by groups they belong to. Sorted by priority or due date,
ties broken by description.`,
	RunE: runList,
}

var (
	listSort  string
	listOrder string
	listState string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listSort, "sort", "", "sort parameter: priority or due (default from config)")
	listCmd.Flags().StringVar(&listOrder, "order", "", "sort direction: ascending or descending (default from config)")
	listCmd.Flags().StringVar(&listState, "state", "", "filter by state: pending or done")
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	param := task.SortParam(e.cfg.List.Sort)
	if listSort != "" {
		param = task.SortParam(listSort)
	}
	order := task.SortOrder(e.cfg.List.Order)
	if listOrder != "" {
		order = task.SortOrder(listOrder)
	}

	var tasks []*task.Task
	switch listState {
	case "":
		tasks, err = e.sess.List(param, order)
	case "pending":
		tasks, err = e.sess.ListByState(true, param, order)
	case "done":
		tasks, err = e.sess.ListByState(false, param, order)
	default:
		return fmt.Errorf("unknown state %q: use pending or done", listState)
	}
	if err != nil {
		return report(err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for _, t := range tasks {
		printTaskLine(t)
	}
	return nil
}

// printTaskLine renders one task as a single list row.
func printTaskLine(t *task.Task) {
	state := "pending"
	if !t.Pending() {
		state = "done"
	}
	due := ""
	if t.Kind() == task.KindDeadline {
		due = "  due " + t.DueAt().Format(task.DueLayout)
	}
	fmt.Printf("%3d  [%s]  p%-2d  %s (%s)%s\n",
		t.ID(), state, t.Priority(), t.Description(), t.Owner().Name(), due)
}
