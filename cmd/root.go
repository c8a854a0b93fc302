package cmd

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"limeal.fr/launchygo-resolver/pkg/config"
	"limeal.fr/launchygo-resolver/pkg/logging"
)

var (
	debug   bool
	jsonLog bool

	cfg    config.Config
	logger hclog.Logger = hclog.NewNullLogger()
)

var rootCmd = &cobra.Command{
	Use:   "launchygo",
	Short: "launchygo resolves and launches minecraft versions",
	Long: `launchygo resolves a minecraft version descriptor into a ready to run java command.
It installs Fabric, Forge or NeoForge on top of the vanilla version when asked to.

Configuration is read from LAUNCHYGO_* environment variables; flags override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if debug {
			cfg.LogLevel = "debug"
		}
		if cmd.Flags().Changed("json-log") {
			cfg.LogJSON = jsonLog
		}
		logger = logging.NewLogger(logging.Options{
			Name:  "launchygo",
			Level: cfg.LogLevel,
			JSON:  cfg.LogJSON,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log as JSON")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
