package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

// OpApplicationDataBackup is the operation name recorded by
// ApplicationDataBackupStep.
const OpApplicationDataBackup = "application_data_backup"

// DataCategory is one named class of application data to back up.
type DataCategory struct {
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
	SizeMB      int    `yaml:"size_mb" json:"size_mb"`
}

// categoryResult is DataCategory plus its per-category outcome.
type categoryResult struct {
	DataCategory
	Status Status `json:"status"`
}

// appDataManifest is the artifact written for an application data backup.
type appDataManifest struct {
	BackupTimestamp string           `json:"backup_timestamp"`
	Environment     string           `json:"environment"`
	BackupItems     []categoryResult `json:"backup_items"`
	TotalSizeMB     int              `json:"total_size_mb"`
}

// DefaultCatalogue returns the built-in application data catalogue, used
// when no catalogue file is configured.
func DefaultCatalogue() []DataCategory {
	return []DataCategory{
		{Type: "configuration", Description: "Application configuration files", SizeMB: 5},
		{Type: "scan_results", Description: "Historical scan results and reports", SizeMB: 1024},
		{Type: "ml_models", Description: "Machine learning model artifacts", SizeMB: 256},
		{Type: "audit_logs", Description: "Security and audit logs", SizeMB: 128},
	}
}

// LoadCatalogue reads a data catalogue from a YAML file.
func LoadCatalogue(path string) ([]DataCategory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}
	var catalogue []DataCategory
	if err := yaml.Unmarshal(data, &catalogue); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue file: %w", err)
	}
	if len(catalogue) == 0 {
		return nil, fmt.Errorf("catalogue file %s lists no data categories", path)
	}
	return catalogue, nil
}

// CategoryBackupFunc performs the backup of one data category. A nil func
// means the copy mechanics live outside this coordinator and the category is
// recorded as triggered successfully.
type CategoryBackupFunc func(ctx context.Context, category DataCategory) error

// ApplicationDataBackupStep backs up the configured catalogue of data
// categories, each marked SUCCESS or FAILED independently, and uploads a
// manifest. Any failed category fails the step.
type ApplicationDataBackupStep struct {
	catalogue   []DataCategory
	backupFn    CategoryBackupFunc
	sink        sink.Sink
	environment string
	logger      *zap.Logger
	now         func() time.Time
}

// NewApplicationDataBackupStep creates an application data backup step over
// the given catalogue.
func NewApplicationDataBackupStep(catalogue []DataCategory, backupFn CategoryBackupFunc, snk sink.Sink, environment string, logger *zap.Logger) *ApplicationDataBackupStep {
	return &ApplicationDataBackupStep{
		catalogue:   catalogue,
		backupFn:    backupFn,
		sink:        snk,
		environment: environment,
		logger:      logger,
		now:         time.Now,
	}
}

// Name returns the operation name.
func (s *ApplicationDataBackupStep) Name() string { return OpApplicationDataBackup }

// Run backs up each category, writes the manifest, and aggregates.
func (s *ApplicationDataBackupStep) Run(ctx context.Context, _ *Report) StepResult {
	s.logger.Info("starting application data backup", zap.Int("categories", len(s.catalogue)))

	ts := s.now()
	items := make([]categoryResult, 0, len(s.catalogue))
	total := 0
	anyFailed := false

	for _, category := range s.catalogue {
		item := categoryResult{DataCategory: category, Status: StatusSuccess}
		if s.backupFn != nil {
			if err := s.backupFn(ctx, category); err != nil {
				s.logger.Error("category backup failed",
					zap.String("category", category.Type), zap.Error(err))
				item.Status = StatusFailed
				anyFailed = true
			}
		}
		total += category.SizeMB
		items = append(items, item)
	}

	manifest := appDataManifest{
		BackupTimestamp: ts.UTC().Format(sink.TimestampLayout),
		Environment:     s.environment,
		BackupItems:     items,
		TotalSizeMB:     total,
	}

	payload, err := json.Marshal(manifest)
	if err != nil {
		return FailedResult(OpApplicationDataBackup, err)
	}

	manifestKey := sink.Key(sink.CategoryAppBackups, s.environment, ts, "manifest.json")
	if err := s.sink.Write(ctx, manifestKey, payload, sink.ContentTypeJSON); err != nil {
		s.logger.Error("application data backup failed", zap.Error(err))
		return FailedResult(OpApplicationDataBackup, err)
	}

	status := StatusSuccess
	if anyFailed {
		status = StatusFailed
	}

	locationKey := sink.Key(sink.CategoryAppBackups, s.environment, ts, "")
	return StepResult{
		Operation: OpApplicationDataBackup,
		Status:    status,
		Detail: Detail{
			"backup_location": s.sink.Location(locationKey),
			"total_size_mb":   total,
			"manifest":        manifest,
		},
	}
}
