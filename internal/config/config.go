package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/collapseloader/collapse/internal/branding"
	"github.com/collapseloader/collapse/internal/userdata"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Option keys.
const (
	KeySortClients       = "sort_clients"
	KeyShowHiddenClients = "show_hidden_clients"
	KeyTimeout           = "timeout"
	KeyAPIURL            = "api_url"
	KeyCDNServers        = "cdn_servers"
	KeyWebServers        = "web_servers"
	KeyLogLevel          = "log_level"
)

// Options is the typed view of the settings file.
type Options struct {
	// SortClients keeps manifest order when true; when false clients are
	// sorted by name.
	SortClients       bool     `mapstructure:"sort_clients"`
	ShowHiddenClients bool     `mapstructure:"show_hidden_clients"`
	Timeout           int      `mapstructure:"timeout"`
	APIURL            string   `mapstructure:"api_url"`
	CDNServers        []string `mapstructure:"cdn_servers"`
	WebServers        []string `mapstructure:"web_servers"`
	LogLevel          string   `mapstructure:"log_level"`
}

// RequestTimeout returns the configured network timeout.
func (o Options) RequestTimeout() time.Duration {
	if o.Timeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(o.Timeout) * time.Second
}

var filePath string

// Dir returns the directory holding the settings file (the install root).
func Dir() string {
	root, err := userdata.GetRoot()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return root
}

// FilePath returns the full path to the settings file.
func FilePath() string {
	if filePath != "" {
		return filePath
	}
	return userdata.SettingsPath(Dir())
}

// Load initializes Viper to read from the settings file and environment.
// An empty path selects the default location inside the install root.
func Load(path string) {
	filePath = path
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeySortClients, false)
	viper.SetDefault(KeyShowHiddenClients, false)
	viper.SetDefault(KeyTimeout, 5)
	viper.SetDefault(KeyAPIURL, "")
	viper.SetDefault(KeyCDNServers, branding.CDNServers())
	viper.SetDefault(KeyWebServers, branding.WebServers())
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if the settings file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the typed options currently held by Viper.
func Current() (Options, error) {
	var opts Options
	if err := viper.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("decoding settings: %w", err)
	}
	return opts, nil
}

// Set writes a config key-value pair and saves the settings file.
func Set(key, value string) error {
	path := FilePath()
	if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	viper.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating settings file %s: %w", path, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}
