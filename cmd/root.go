package cmd

import (
	"os"

	"github.com/joy095/propertyops/config"
	"github.com/joy095/propertyops/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "propertyops",
	Short: "Property operations service: reservations, payments, housekeeping, maintenance and calendar",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		logger.InitLoggers()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
}

// Execute runs the command line. With no subcommand it serves.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
