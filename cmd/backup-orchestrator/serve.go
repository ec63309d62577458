package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/config"
	"github.com/agentscan/backup-orchestrator/pkg/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the orchestrator over HTTP (POST /run)",
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

		h := handler.New(orch, logger)
		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handler.NewServeMux(h, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		return srv.ListenAndServe()
	},
}
