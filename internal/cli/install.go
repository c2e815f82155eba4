package cli

import (
	"fmt"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/retrieval"
	"github.com/spf13/cobra"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install a client",
	Long: `Download and install a client into the install root. An interrupted
download resumes from where it stopped on the next attempt. Installing a
client that is already present does not touch the network.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"uninstall"},
	Short:   "Remove an installed client",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var resetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Reinstall a client from scratch",
	Args:  cobra.ExactArgs(1),
	RunE:  runReset,
}

func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "Install even if the client is marked unavailable")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(resetCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	a, err := newOnlineApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	d, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	if !d.Enabled && !installForce {
		return fmt.Errorf("%s is marked unavailable; use --force to install anyway", d.Name)
	}

	state := a.engine.Retrieve(cmd.Context(), d)
	return reportState(cmd, d, state)
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := newOnlineApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	d, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	if !a.engine.IsInstalled(d) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not installed.\n", d.Name)
		return nil
	}
	if err := a.engine.Remove(d); err != nil {
		return fmt.Errorf("removing %s: %w", d.Name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", d.Name)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := newOnlineApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	d, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	state := a.engine.Reset(cmd.Context(), d)
	return reportState(cmd, d, state)
}

func reportState(cmd *cobra.Command, d manifest.Descriptor, state retrieval.State) error {
	switch state {
	case retrieval.AlreadyInstalled:
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already installed.\n", d.Name)
	case retrieval.Installed:
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", d.Name)
	default:
		return fmt.Errorf("installing %s: %s", d.Name, state)
	}
	return nil
}
