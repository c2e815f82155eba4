package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the catalog from the manifest API",
	Long: `Fetch the manifests again and rewrite the local snapshot. When the API
is unreachable the catalog is rebuilt from the snapshot instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := connect(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if err := a.catalog.Refresh(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog holds %d clients.\n", len(a.catalog.Clients()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
