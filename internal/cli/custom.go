package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/collapseloader/collapse/internal/custom"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	customName       string
	customVersion    string
	customEntryPoint string
	customFabric     bool
)

func init() {
	customAddCmd.Flags().StringVar(&customName, "name", "", "Display name (defaults to the file name)")
	customAddCmd.Flags().StringVar(&customVersion, "version", custom.DefaultVersion, "Game version")
	customAddCmd.Flags().StringVar(&customEntryPoint, "main-class", custom.DefaultEntryPoint, "Entry point class")
	customAddCmd.Flags().BoolVar(&customFabric, "fabric", false, "Client is a fabric mod")

	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customListCmd)
	customCmd.AddCommand(customRemoveCmd)
	customCmd.AddCommand(customRenameCmd)
	customCmd.AddCommand(customSetVersionCmd)
	rootCmd.AddCommand(customCmd)
}

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage clients added from local files",
	Long: `Custom clients are jars registered from the local disk. They are copied
into the install root, always listed after catalog clients, and installed
like any other client.`,
}

var customAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a local client jar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newLocalApp()
		if err != nil {
			return err
		}
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		c, err := a.custom.Add(custom.AddRequest{
			Path:       path,
			Name:       customName,
			Version:    customVersion,
			EntryPoint: customEntryPoint,
			Fabric:     customFabric,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (custom id %d)\n", c.Name, c.CustomID)
		return nil
	},
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newLocalApp()
		if err != nil {
			return err
		}
		clients := a.custom.List()
		if len(clients) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No custom clients.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tVERSION\tFABRIC\tFILE\tADDED")
		for _, c := range clients {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%s\n",
				c.CustomID, c.Name, c.Version, c.Fabric, c.Filename, humanize.Time(c.AddedAt))
		}
		return tw.Flush()
	},
}

var customRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Unregister a custom client and delete its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := customTarget(args[0])
		if err != nil {
			return err
		}
		if err := a.custom.Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed custom client %d\n", id)
		return nil
	},
}

var customRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a custom client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := customTarget(args[0])
		if err != nil {
			return err
		}
		if err := a.custom.Rename(id, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed custom client %d to %s\n", id, args[1])
		return nil
	},
}

var customSetVersionCmd = &cobra.Command{
	Use:   "set-version <id> <version>",
	Short: "Change the game version of a custom client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := customTarget(args[0])
		if err != nil {
			return err
		}
		if err := a.custom.SetVersion(id, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Custom client %d now targets %s\n", id, args[1])
		return nil
	},
}

func customTarget(arg string) (*app, int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid custom id %q", arg)
	}
	a, err := newLocalApp()
	if err != nil {
		return nil, 0, err
	}
	return a, id, nil
}
