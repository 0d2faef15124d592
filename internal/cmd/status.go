package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the snapshot",
	Long: `Print where the snapshot lives and how much it holds. Reports
whether the file on disk still matches the state this invocation
loaded, which catches another process writing between load and check.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	roster := e.sess.Roster()
	fmt.Printf("Snapshot: %s\n", e.store.Path())
	fmt.Printf("Users:    %d\n", len(roster.Users()))
	fmt.Printf("Groups:   %d\n", len(roster.Groups()))
	fmt.Printf("Tasks:    %d\n", e.sess.Pool().Len())

	changed, err := e.store.Changed(roster, e.sess.Pool())
	if err != nil {
		return err
	}
	if changed {
		fmt.Println("Note: the snapshot file changed since this state was loaded.")
	}
	return nil
}
