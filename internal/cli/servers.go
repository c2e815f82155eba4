package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Probe the configured CDN and API servers",
	Long: `Check each configured server in order and show which CDN and API
server would be used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newLocalApp()
		if err != nil {
			return err
		}
		a.probe(cmd.Context())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "CDN: %s\n", orNone(a.servers.CDN()))
		fmt.Fprintf(out, "API: %s\n", orNone(a.servers.Web()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serversCmd)
}

func orNone(s string) string {
	if s == "" {
		return "none reachable"
	}
	return s
}
