package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local manifest snapshot",
	Long: `The manifest snapshot is rewritten on every successful catalog load and
used when the manifest API is unreachable.`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show snapshot location, size, and age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newLocalApp()
		if err != nil {
			return err
		}
		info, err := a.cache.Info()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if info == nil {
			fmt.Fprintf(out, "No snapshot at %s\n", a.cache.Path())
			return nil
		}
		fmt.Fprintf(out, "Path:     %s\n", info.Path)
		fmt.Fprintf(out, "Size:     %s\n", humanize.Bytes(uint64(info.Size)))
		fmt.Fprintf(out, "Clients:  %s\n", humanize.Comma(int64(info.Clients)))
		fmt.Fprintf(out, "Created:  %s (%s)\n", info.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(info.CreatedAt))
		fmt.Fprintf(out, "Version:  %s\n", info.Version)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newLocalApp()
		if err != nil {
			return err
		}
		if err := a.cache.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Snapshot deleted.")
		return nil
	},
}
