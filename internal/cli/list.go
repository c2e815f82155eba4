package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	listJSON      bool
	listInstalled bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog clients",
	Long: `List the clients in the catalog, in registry order. Custom clients are
listed last. Hidden clients appear only when show_hidden_clients is set.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "Only list installed clients")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a catalog client for display.
type listEntry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Variant   string `json:"variant"`
	Filename  string `json:"filename"`
	Custom    bool   `json:"custom"`
	Enabled   bool   `json:"enabled"`
	Installed bool   `json:"installed"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newOnlineApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	installed := func(d manifest.Descriptor) bool { return a.engine.Installed(d.Filename()) }
	entries := buildEntries(a.catalog.Clients(), installed, listInstalled)
	if len(entries) == 0 {
		if listInstalled {
			fmt.Fprintln(cmd.OutOrStdout(), "No clients installed yet.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "The catalog is empty.")
		}
		return nil
	}

	if listJSON {
		return printListJSON(cmd.OutOrStdout(), entries)
	}
	return printListTable(cmd.OutOrStdout(), entries)
}

func buildEntries(clients []manifest.Descriptor, installed func(manifest.Descriptor) bool, onlyInstalled bool) []listEntry {
	entries := make([]listEntry, 0, len(clients))
	for _, d := range clients {
		e := listEntry{
			ID:        d.ID,
			Name:      d.Name,
			Version:   d.Version,
			Variant:   string(d.Variant),
			Filename:  d.Filename(),
			Custom:    d.IsCustom,
			Enabled:   d.Enabled,
			Installed: installed(d),
		}
		if onlyInstalled && !e.Installed {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func printListTable(w io.Writer, entries []listEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVERSION\tVARIANT\tSTATUS")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Name, version, e.Variant, status(e))
	}
	return tw.Flush()
}

func status(e listEntry) string {
	s := "-"
	switch {
	case e.Installed:
		s = "installed"
	case !e.Enabled:
		s = "unavailable"
	}
	if e.Custom {
		s += " (custom)"
	}
	return s
}

func printListJSON(w io.Writer, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
