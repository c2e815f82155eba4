// Package branding provides compile-time identity values for the loader.
//
// Values come from the embedded branding.yaml so a fork can rename the
// binary, home directory, and default server lists without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string   `yaml:"cli_name"`
	DisplayName string   `yaml:"display_name"`
	Description string   `yaml:"description"`
	Version     string   `yaml:"version"`
	Codename    string   `yaml:"codename"`
	HomeDir     string   `yaml:"home_dir"`
	EnvPrefix   string   `yaml:"env_prefix"`
	CDNServers  []string `yaml:"cdn_servers"`
	WebServers  []string `yaml:"web_servers"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "collapse",
			DisplayName: "Collapse",
			Description: "Catalog manager and installer for game clients",
			Version:     "dev",
			Codename:    "dev",
			HomeDir:     ".collapse",
			EnvPrefix:   "COLLAPSE",
			CDNServers:  []string{"cdn.collapseloader.org"},
			WebServers:  []string{"web.collapseloader.org"},
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "collapse").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// Version returns the product version string stamped into cache snapshots,
// formatted as "<version> (<codename>)".
func Version() string {
	load()
	return defaults.Version + " (" + defaults.Codename + ")"
}

// HomeDir returns the dot-directory name under $HOME (e.g., ".collapse").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "COLLAPSE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// CDNServers returns the default ordered list of CDN hosts.
func CDNServers() []string {
	load()
	return append([]string(nil), defaults.CDNServers...)
}

// WebServers returns the default ordered list of API hosts.
func WebServers() []string {
	load()
	return append([]string(nil), defaults.WebServers...)
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("ROOT") → "COLLAPSE_ROOT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
