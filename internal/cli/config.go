package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/collapseloader/collapse/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored in settings.yaml inside the install root.
Every key can also be set from the environment as COLLAPSE_<KEY>.

Keys:
  sort_clients         bool      keep manifest order instead of sorting by name (default false)
  show_hidden_clients  bool      list clients not marked for display (default false)
  timeout              int       network timeout in seconds (default 5)
  api_url              string    fixed manifest API server, skips selection (default "")
  cdn_servers          []string  download servers in preference order (default: built-in list)
  web_servers          []string  manifest API servers in preference order (default: built-in list)
  log_level            string    debug, info, warn or error (default "info")

List values are comma separated on the command line:
  collapse config set cdn_servers https://a.example/,https://b.example/`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.Current()
		if err != nil {
			return err
		}
		printOptions(cmd.OutOrStdout(), opts)
		return nil
	},
}

func printOptions(w io.Writer, o config.Options) {
	fmt.Fprintf(w, "%s = %t\n", config.KeySortClients, o.SortClients)
	fmt.Fprintf(w, "%s = %t\n", config.KeyShowHiddenClients, o.ShowHiddenClients)
	fmt.Fprintf(w, "%s = %d\n", config.KeyTimeout, o.Timeout)
	fmt.Fprintf(w, "%s = %s\n", config.KeyAPIURL, o.APIURL)
	fmt.Fprintf(w, "%s = %s\n", config.KeyCDNServers, strings.Join(o.CDNServers, ","))
	fmt.Fprintf(w, "%s = %s\n", config.KeyWebServers, strings.Join(o.WebServers, ","))
	fmt.Fprintf(w, "%s = %s\n", config.KeyLogLevel, o.LogLevel)
}
