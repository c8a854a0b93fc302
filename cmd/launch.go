package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Resolve and launch minecraft",
	Long: `Resolve the configured version descriptor, install the mod loader if any,
then spawn the game and relay its output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrideFromFlags(cmd, &cfg)

		l, err := buildLauncher(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		launch, err := l.Prepare(ctx)
		if err != nil {
			logger.Error("failed to prepare launch", "error", err)
			return err
		}
		defer launch.Close()

		return launch.Run(ctx, logger)
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	addLaunchFlags(launchCmd)
}
