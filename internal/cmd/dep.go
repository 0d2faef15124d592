package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage task dependencies",
}

var depAddCmd = &cobra.Command{
	Use:   "add <id> <dependency-id>",
	Short: "Make a task depend on another",
	Long: `Make a task depend on another existing task. A completed task
cannot take on a dependency that is still open. Adding an edge that is
already present changes nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: runDepAdd,
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <id> <dependency-id>",
	Short: "Drop a dependency from a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepRemove,
}

func init() {
	rootCmd.AddCommand(depCmd)
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	depID, err := parseID(args[1])
	if err != nil {
		return err
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.AddDependency(id, depID); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Task %d now depends on %d.\n", id, depID)
	return nil
}

func runDepRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	depID, err := parseID(args[1])
	if err != nil {
		return err
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.sess.RemoveDependency(id, depID); err != nil {
		return report(err)
	}
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Task %d no longer depends on %d.\n", id, depID)
	return nil
}
