package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taredo/internal/config"
	"taredo/internal/logging"
	"taredo/internal/owner"
	"taredo/internal/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserAdd,
}

var userEmailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Change the acting user's email address",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserEmail,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userEmailCmd)
}

// runUserAdd registers a user directly against the store: it is the one
// command that runs without an acting user.
func runUserAdd(cmd *cobra.Command, args []string) error {
	name, email := args[0], args[1]
	if !owner.ValidName(name) {
		return fmt.Errorf("invalid user name %q", name)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(cfg.Data.ResolveDataDir(), cfg.Logging.Level)
		if err != nil {
			return err
		}
	}
	defer log.Close()

	st := store.New(cfg.Data.StorePath(), log)
	roster, pool, err := st.Load()
	if err != nil {
		return err
	}
	if _, err := roster.LookupUser(name); err == nil {
		return fmt.Errorf("user %q already exists", name)
	}

	roster.AddUser(owner.NewUser(name, email))
	if err := st.Save(roster, pool); err != nil {
		return err
	}
	fmt.Printf("User %s registered.\n", name)
	return nil
}

func runUserEmail(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	e.sess.SetEmail(args[0])
	if err := e.save(); err != nil {
		return err
	}
	fmt.Printf("Email for %s updated.\n", e.sess.Actor().Name())
	return nil
}
