package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentscan/backup-orchestrator/pkg/backup"
	"github.com/agentscan/backup-orchestrator/pkg/config"
	"github.com/agentscan/backup-orchestrator/pkg/render"
)

var (
	outputFormat string
	outputPath   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one backup orchestration pass and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		orch, err := buildOrchestrator(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		rep := orch.Run(cmd.Context())

		data, err := render.Render(rep, render.ParseFormat(outputFormat))
		if err != nil {
			return err
		}

		if outputPath != "" {
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write report to file: %w", err)
			}
			fmt.Printf("Report written to %s\n", outputPath)
		} else {
			fmt.Println(string(data))
		}

		// Scheduler-visible exit code mirrors the handler status codes.
		if rep.OverallStatus == backup.StatusFailed {
			os.Exit(2)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&outputFormat, "format", "json", "report format (json, text, markdown)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "output file path (default: stdout)")
}
