package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete taredo configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	List    ListConfig    `mapstructure:"list"`
	Mail    MailConfig    `mapstructure:"mail"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig controls where taredo stores its state
type DataConfig struct {
	// Dir is the directory holding the snapshot file and the log file.
	// If empty, defaults to the XDG data directory for taredo.
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir"`
	// StoreFile is the snapshot file name inside Dir (default: "taredo.yaml")
	StoreFile string `mapstructure:"store_file"`
}

// ListConfig sets the default ordering of list views
type ListConfig struct {
	// Sort is the default sort parameter: "priority" or "due"
	Sort string `mapstructure:"sort"`
	// Order is the default direction: "ascending" or "descending"
	Order string `mapstructure:"order"`
}

// MailConfig controls the email collaborator
type MailConfig struct {
	// From is the address outbound reminders are sent from
	From string `mapstructure:"from"`
	// ReminderPrefix is prepended to the task description in outbound
	// subjects (default: "REMINDER: ")
	ReminderPrefix string `mapstructure:"reminder_prefix"`
	// InboundMarker is the exact subject that marks a message as a task
	// to import (default: "[NEW TASK]")
	InboundMarker string `mapstructure:"inbound_marker"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:       "", // Empty means use DataDir()
			StoreFile: "taredo.yaml",
		},
		List: ListConfig{
			Sort:  "priority",
			Order: "ascending",
		},
		Mail: MailConfig{
			From:           "taredo@localhost",
			ReminderPrefix: "REMINDER: ",
			InboundMarker:  "[NEW TASK]",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.dir", defaults.Data.Dir)
	viper.SetDefault("data.store_file", defaults.Data.StoreFile)

	// List defaults
	viper.SetDefault("list.sort", defaults.List.Sort)
	viper.SetDefault("list.order", defaults.List.Order)

	// Mail defaults
	viper.SetDefault("mail.from", defaults.Mail.From)
	viper.SetDefault("mail.reminder_prefix", defaults.Mail.ReminderPrefix)
	viper.SetDefault("mail.inbound_marker", defaults.Mail.InboundMarker)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ResolveDataDir returns the resolved data directory path. An empty
// configured dir falls back to DataDir(); a leading ~ expands to the
// user's home directory.
func (d *DataConfig) ResolveDataDir() string {
	if d.Dir == "" {
		return DataDir()
	}

	path := d.Dir
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}
	return path
}

// StorePath returns the full path of the snapshot file.
func (d *DataConfig) StorePath() string {
	return filepath.Join(d.ResolveDataDir(), d.StoreFile)
}

// DataDir returns the path to the user's taredo data directory
func DataDir() string {
	// Check XDG_DATA_HOME first
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "taredo")
	}
	// Fall back to ~/.local/share/taredo
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taredo"
	}
	return filepath.Join(home, ".local", "share", "taredo")
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taredo")
	}
	// Fall back to ~/.config/taredo
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taredo"
	}
	return filepath.Join(home, ".config", "taredo")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
