package backup

import (
	"context"

	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/cloud"
)

// OpBackupVerification is the operation name recorded by
// BackupVerificationStep.
const OpBackupVerification = "rds_backup_verification"

// ResourceHealth classifies the automated-backup state of one managed
// database instance.
type ResourceHealth string

const (
	// HealthHealthy: retention configured and a recent snapshot exists.
	HealthHealthy ResourceHealth = "HEALTHY"
	// HealthWarning: retention configured but no recent snapshot.
	HealthWarning ResourceHealth = "WARNING"
	// HealthDisabled: retention is zero, automated backups are off.
	HealthDisabled ResourceHealth = "DISABLED"
)

// InstanceBackupStatus is the per-instance entry recorded in the step
// detail.
type InstanceBackupStatus struct {
	InstanceID      string         `json:"instance_id"`
	RetentionDays   int            `json:"backup_retention_days"`
	RecentSnapshots int            `json:"recent_snapshots,omitempty"`
	Status          ResourceHealth `json:"status"`
}

// BackupVerificationStep inspects the automated backups of every managed
// database instance in the environment. The step is SUCCESS only when every
// instance is HEALTHY or WARNING; a DISABLED instance fails the step.
type BackupVerificationStep struct {
	inventory   cloud.SnapshotInventory
	environment string
	logger      *zap.Logger
}

// NewBackupVerificationStep creates a verification step over the given
// snapshot inventory.
func NewBackupVerificationStep(inventory cloud.SnapshotInventory, environment string, logger *zap.Logger) *BackupVerificationStep {
	return &BackupVerificationStep{
		inventory:   inventory,
		environment: environment,
		logger:      logger,
	}
}

// Name returns the operation name.
func (s *BackupVerificationStep) Name() string { return OpBackupVerification }

// Run verifies each instance and aggregates a step-level status.
func (s *BackupVerificationStep) Run(ctx context.Context, _ *Report) StepResult {
	s.logger.Info("verifying database backups", zap.String("environment", s.environment))

	instances, err := s.inventory.ListInstances(ctx, s.environment)
	if err != nil {
		s.logger.Error("backup verification failed", zap.Error(err))
		return FailedResult(OpBackupVerification, err)
	}

	statuses := make([]InstanceBackupStatus, 0, len(instances))
	allPassing := true
	for _, inst := range instances {
		entry := InstanceBackupStatus{
			InstanceID:    inst.ID,
			RetentionDays: inst.RetentionDays,
		}

		if inst.RetentionDays > 0 {
			recent, err := s.inventory.CountRecentSnapshots(ctx, inst.ID)
			if err != nil {
				s.logger.Error("backup verification failed", zap.String("instance", inst.ID), zap.Error(err))
				return FailedResult(OpBackupVerification, err)
			}
			entry.RecentSnapshots = recent
			if recent > 0 {
				entry.Status = HealthHealthy
			} else {
				entry.Status = HealthWarning
			}
		} else {
			entry.Status = HealthDisabled
			allPassing = false
		}

		statuses = append(statuses, entry)
	}

	status := StatusSuccess
	if !allPassing {
		status = StatusFailed
	}

	return StepResult{
		Operation: OpBackupVerification,
		Status:    status,
		Detail:    Detail{"instances": statuses},
	}
}
