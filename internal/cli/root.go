// Package cli implements the atlas command line tool.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/atlas-client/internal/app"
	"github.com/samvad-hq/atlas-client/internal/config"
	"github.com/samvad-hq/atlas-client/internal/logger"
	"github.com/samvad-hq/atlas-client/pkg/atlas"
)

var version = "0.1.0"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	apiKey      string
	baseURL     string
	logLevel    string
	queriesFile string
	timeout     time.Duration

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Query the Atlas analytics API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.apiKey, "api-key", "", "Atlas API key (defaults to ATLAS_API_KEY)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Atlas base URL (defaults to ATLAS_BASE_URL)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.queriesFile, "queries-file", "", "saved queries file (defaults to QUERIES_FILE)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "overall request timeout (0 disables)")

	rootCmd.AddCommand(newURICmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newMetaCmd(opts))
	rootCmd.AddCommand(newEndpointsCmd())

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// load merges environment config with explicit flags and sets up logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.AtlasAPIKey = strings.TrimSpace(o.apiKey)
	}
	if flags.Changed("base-url") {
		cfg.AtlasBaseURL = strings.TrimSpace(o.baseURL)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("queries-file") {
		cfg.QueriesFile = o.queriesFile
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = o.timeout
	}
	o.cfg = cfg

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	o.log = log
	log.DebugObj("cli config loaded", "config", cfg.Redacted())
	return nil
}

func (o *rootOptions) client() *atlas.Client {
	return app.NewAtlasClient(o.cfg, o.log)
}
