package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taredo/internal/config"
	"taredo/internal/errors"
	"taredo/internal/logging"
	"taredo/internal/session"
	"taredo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "taredo",
	Short: "Shared task pool with ownership and dependencies",
	Long: `Taredo manages a pool of tasks owned by users and groups, with
dependencies between tasks, deadline tracking, and a group membership
workflow. Each invocation acts as one user (--user) and saves the
snapshot after every change.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taredo/config.yaml)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "acting user name")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TAREDO")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TAREDO_LIST_SORT for list.sort
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// env holds everything a command needs for one invocation: loaded state,
// the acting user's session, the store to save back to, and the logger.
// A watcher on the snapshot file flags external writes between load and
// save, so save can warn before overwriting another process's changes.
type env struct {
	cfg     *config.Config
	log     *logging.Logger
	store   *store.Store
	sess    *session.Session
	watcher *store.Watcher
	drifted atomic.Bool
}

// openEnv loads the snapshot and opens a session for the --user actor.
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(cfg.Data.ResolveDataDir(), cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
	}

	st := store.New(cfg.Data.StorePath(), log)
	roster, pool, err := st.Load()
	if err != nil {
		log.Close()
		return nil, err
	}

	name := viper.GetString("user")
	if name == "" {
		log.Close()
		return nil, fmt.Errorf("no acting user: pass --user or set TAREDO_USER")
	}
	actor, err := roster.LookupUser(name)
	if err != nil {
		log.Close()
		return nil, err
	}

	e := &env{
		cfg:   cfg,
		log:   log,
		store: st,
		sess:  session.New(actor, roster, pool, log),
	}

	// Best effort: on a fresh install the data directory does not exist
	// yet and there is nothing to watch.
	if w, err := st.Watch(func() { e.drifted.Store(true) }); err == nil {
		e.watcher = w
	} else {
		log.Debug("snapshot watch unavailable", "error", err)
	}

	return e, nil
}

// save writes the current state back to the snapshot file, warning first
// when another process rewrote the snapshot since this command loaded it.
func (e *env) save() error {
	if e.drifted.Load() {
		e.log.Warn("snapshot changed on disk since load, overwriting", "path", e.store.Path())
		fmt.Fprintln(os.Stderr, "warning: the snapshot file changed on disk while this command ran; overwriting")
	}
	return e.store.Save(e.sess.Roster(), e.sess.Pool())
}

// close stops the snapshot watcher and releases the logger.
func (e *env) close() {
	if e.watcher != nil {
		e.watcher.Stop()
	}
	_ = e.log.Close()
}

// report prints an error the way the front end is expected to: user
// mistakes get the plain message, internal failures keep their chain.
func report(err error) error {
	if errors.IsUserFacing(err) {
		return fmt.Errorf("%s", err.Error())
	}
	return err
}
