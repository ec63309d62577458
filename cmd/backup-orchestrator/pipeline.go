package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/backup"
	"github.com/agentscan/backup-orchestrator/pkg/cloud"
	"github.com/agentscan/backup-orchestrator/pkg/config"
	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

// buildOrchestrator wires collaborators and the fixed step pipeline from the
// loaded configuration. All wiring problems surface here, at startup.
func buildOrchestrator(ctx context.Context, cfg config.Config, logger *zap.Logger) (*backup.Orchestrator, error) {
	snk, err := buildSink(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ClusterAPIURL == "" {
		return nil, fmt.Errorf("%s is required to reach the cluster control plane", config.EnvClusterAPIURL)
	}
	clusterAPI := cloud.NewHTTPClusterAPI(cfg.ClusterAPIURL)

	if cfg.SnapshotDSN == "" {
		return nil, fmt.Errorf("%s is required to verify database backups", config.EnvSnapshotDSN)
	}
	inventory, err := cloud.OpenSQLInventory(cfg.SnapshotDSN)
	if err != nil {
		return nil, err
	}

	catalogue := backup.DefaultCatalogue()
	if cfg.CataloguePath != "" {
		catalogue, err = backup.LoadCatalogue(cfg.CataloguePath)
		if err != nil {
			return nil, err
		}
	}

	steps := []backup.Step{
		backup.NewClusterBackupStep(clusterAPI, snk, cfg.ClusterName, cfg.Environment, logger),
		backup.NewBackupVerificationStep(inventory, cfg.Environment, logger),
		backup.NewApplicationDataBackupStep(catalogue, nil, snk, cfg.Environment, logger),
		backup.NewMetadataUploadStep(snk, cfg.Environment, logger),
	}
	if cfg.WebhookURL != "" {
		steps = append(steps, backup.NewNotifyStep(cfg.WebhookURL, cfg.Environment, cfg.ClusterName, logger))
	}

	return backup.NewOrchestrator(cfg.Environment, cfg.ClusterName, logger, steps...), nil
}

func buildSink(ctx context.Context, cfg config.Config) (sink.Sink, error) {
	if localDir != "" {
		return sink.NewFileSink(localDir)
	}
	return sink.NewS3Sink(ctx, sink.S3Config{
		Bucket:   cfg.Bucket,
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	})
}
