package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/cloud"
	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

// OpClusterBackup is the operation name recorded by ClusterBackupStep.
const OpClusterBackup = "kubernetes_backup"

// clusterManifest describes what a cluster backup contains.
type clusterManifest struct {
	ClusterName       string   `json:"cluster_name"`
	BackupTimestamp   string   `json:"backup_timestamp"`
	BackupType        string   `json:"backup_type"`
	Namespaces        []string `json:"namespaces"`
	ResourcesBackedUp []string `json:"resources_backed_up"`
}

// ClusterBackupStep backs up cluster resources when the cluster is ready.
// If the cluster is not ACTIVE the step is SKIPPED with the observed status
// as the reason.
type ClusterBackupStep struct {
	api         cloud.ClusterAPI
	sink        sink.Sink
	clusterName string
	environment string
	namespaces  []string
	logger      *zap.Logger
	now         func() time.Time
}

// NewClusterBackupStep creates a cluster backup step. Collaborators are
// injected; the step owns no long-lived state.
func NewClusterBackupStep(api cloud.ClusterAPI, snk sink.Sink, clusterName, environment string, logger *zap.Logger) *ClusterBackupStep {
	return &ClusterBackupStep{
		api:         api,
		sink:        snk,
		clusterName: clusterName,
		environment: environment,
		namespaces:  []string{"agentscan", "kube-system", "monitoring"},
		logger:      logger,
		now:         time.Now,
	}
}

// Name returns the operation name.
func (s *ClusterBackupStep) Name() string { return OpClusterBackup }

// Run checks cluster readiness, records the backup manifest, and uploads it.
func (s *ClusterBackupStep) Run(ctx context.Context, _ *Report) StepResult {
	s.logger.Info("starting cluster resources backup", zap.String("cluster", s.clusterName))

	info, err := s.api.DescribeCluster(ctx, s.clusterName)
	if err != nil {
		s.logger.Error("cluster backup failed", zap.Error(err))
		return FailedResult(OpClusterBackup, err)
	}

	if info.Status != cloud.ClusterStatusActive {
		reason := fmt.Sprintf("cluster status is %s, skipping backup", info.Status)
		s.logger.Warn("cluster backup skipped", zap.String("status", info.Status))
		return SkippedResult(OpClusterBackup, reason)
	}

	ts := s.now()
	manifest := clusterManifest{
		ClusterName:     s.clusterName,
		BackupTimestamp: ts.UTC().Format(sink.TimestampLayout),
		BackupType:      "full",
		Namespaces:      s.namespaces,
		ResourcesBackedUp: []string{
			"deployments", "services", "configmaps", "secrets",
			"persistentvolumeclaims", "ingresses",
		},
	}

	payload, err := json.Marshal(manifest)
	if err != nil {
		return FailedResult(OpClusterBackup, err)
	}

	metadataKey := sink.Key(sink.CategoryClusterBackups, s.environment, ts, "metadata.json")
	if err := s.sink.Write(ctx, metadataKey, payload, sink.ContentTypeJSON); err != nil {
		s.logger.Error("cluster backup failed", zap.Error(err))
		return FailedResult(OpClusterBackup, err)
	}

	backupKey := sink.Key(sink.CategoryClusterBackups, s.environment, ts, "cluster-backup.tar.gz")
	location := s.sink.Location(backupKey)
	s.logger.Info("cluster backup completed", zap.String("location", location))

	return StepResult{
		Operation: OpClusterBackup,
		Status:    StatusSuccess,
		Detail: Detail{
			"backup_location": location,
			"metadata":        manifest,
		},
	}
}
