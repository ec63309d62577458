package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	localDir   string
)

var rootCmd = &cobra.Command{
	Use:   "backup-orchestrator",
	Short: "Coordinates backup and verification operations and persists an auditable report",
	Long: `backup-orchestrator runs a fixed set of independent backup and
verification steps against the managed infrastructure, aggregates their
outcomes into an overall health status, and persists a JSON report to object
storage.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a TOML config file (environment variables take precedence)")
	rootCmd.PersistentFlags().StringVar(&localDir, "local-dir", "", "write artifacts to a local directory instead of S3")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Production encoding matches how the
// rest of the platform ships logs.
func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}
