package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find a client by name",
	Long: `Find the first client whose name contains <name>, ignoring case.
Prefix a number with # to look a client up by ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	a, err := newOnlineApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	d, err := a.lookup(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %d\n", d.ID)
	fmt.Fprintf(out, "Name:        %s\n", d.Name)
	fmt.Fprintf(out, "Version:     %s\n", d.Version)
	if idx := d.AssetIndex(); idx != "" {
		fmt.Fprintf(out, "Asset index: %s\n", idx)
	}
	fmt.Fprintf(out, "Variant:     %s\n", d.Variant)
	fmt.Fprintf(out, "Download:    %s\n", d.DownloadPath)
	if d.EntryPoint != "" {
		fmt.Fprintf(out, "Entry point: %s\n", d.EntryPoint)
	}
	fmt.Fprintf(out, "Installed:   %t\n", a.engine.IsInstalled(d))
	if a.engine.IsInstalled(d) {
		fmt.Fprintf(out, "Location:    %s\n", a.engine.PackageDir(d))
	}
	return nil
}
