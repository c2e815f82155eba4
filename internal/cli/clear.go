package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/collapseloader/collapse/internal/network"
	"github.com/collapseloader/collapse/internal/retrieval"
	"github.com/collapseloader/collapse/internal/userdata"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete everything in the install root except settings",
	Long: `Delete every installed client, partial download, and custom client copy in
the install root. The settings file and the manifest snapshot are kept.
Entries that cannot be removed are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := newLocalApp()
	if err != nil {
		return err
	}

	if !clearYes {
		fmt.Fprintf(cmd.OutOrStdout(), "? Delete all data in %s? (y/N) ", a.root)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if !scanner.Scan() {
			return nil
		}
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Clear cancelled.")
			return nil
		}
	}

	engine := retrieval.New(a.root, "", network.NewHTTPTransport(),
		retrieval.WithLogger(logger.Named("retrieval")))
	if err := engine.ClearInstallRoot(userdata.IgnoredByClear(engine.Root())...); err != nil {
		return fmt.Errorf("clearing %s: some entries could not be removed", engine.Root())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", engine.Root())
	return nil
}
