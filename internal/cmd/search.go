package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taredo/internal/task"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the acting user's tasks",
	Long: `Search by description text (--text, case-insensitive substring)
or by calendar day (--due-on, deadline tasks due that day).`,
	RunE: runSearch,
}

var (
	searchText  string
	searchDueOn string
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchText, "text", "", "description substring to search for")
	searchCmd.Flags().StringVar(&searchDueOn, "due-on", "", "calendar day as dd/MM/yyyy")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if (searchText == "") == (searchDueOn == "") {
		return fmt.Errorf("pass exactly one of --text or --due-on")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	var tasks []*task.Task
	if searchText != "" {
		tasks = e.sess.SearchText(searchText)
	} else {
		day, err := time.ParseInLocation(task.DayLayout, searchDueOn, time.Local)
		if err != nil {
			return fmt.Errorf("bad day %q: want dd/MM/yyyy", searchDueOn)
		}
		tasks = e.sess.SearchDueOn(day)
	}

	if len(tasks) == 0 {
		fmt.Println("No matching tasks.")
		return nil
	}
	for _, t := range tasks {
		printTaskLine(t)
	}
	return nil
}
