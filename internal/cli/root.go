package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/collapseloader/collapse/internal/branding"
	"github.com/collapseloader/collapse/internal/config"
	"github.com/collapseloader/collapse/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	flagVerbose  bool
	flagLevel    string
	flagTimeout  int
	flagAPIURL   string
	flagSettings string
	flagLogJSON  bool
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps a catalog of game clients from the remote manifest API,
falls back to a local snapshot when offline, and installs clients into the
install root with resumable downloads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load(flagSettings)

		level := flagLevel
		if level == "" {
			level = config.Get(config.KeyLogLevel)
		}
		if flagVerbose {
			level = "debug"
		}
		cfg := logging.DefaultConfig()
		if flagLogJSON {
			cfg = logging.ProductionConfig()
		}
		cfg.Level = level
		l, err := logging.New(cfg)
		if err != nil {
			return fmt.Errorf("configuring logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flagLevel, "level", "", "Log level (debug, info, warning, error, critical)")
	pf.IntVar(&flagTimeout, "timeout", 0, "Network timeout in seconds (overrides settings)")
	pf.StringVar(&flagAPIURL, "api-url", "", "Manifest API base URL (skips web server probing)")
	pf.StringVar(&flagSettings, "settings", "", "Path to the settings file")
	pf.BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON")
}

// Execute runs the root command with build info injected via ldflags.
// An interrupt cancels in-flight downloads; partial files stay resumable.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
