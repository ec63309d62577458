package backup

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

// OpMetadataUpload is the operation name recorded by MetadataUploadStep.
const OpMetadataUpload = "metadata_upload"

// MetadataUploadStep serializes the report built so far and persists it via
// the sink. It runs last, so the durable copy contains every preceding step
// result but not this step's own outcome and not the overall status, which
// is derived only after all steps finish. That asymmetry is inherited from
// the system this replaces and is deliberate; see the orchestrator docs.
type MetadataUploadStep struct {
	sink        sink.Sink
	environment string
	logger      *zap.Logger
	now         func() time.Time
}

// NewMetadataUploadStep creates a metadata upload step.
func NewMetadataUploadStep(snk sink.Sink, environment string, logger *zap.Logger) *MetadataUploadStep {
	return &MetadataUploadStep{
		sink:        snk,
		environment: environment,
		logger:      logger,
		now:         time.Now,
	}
}

// Name returns the operation name.
func (s *MetadataUploadStep) Name() string { return OpMetadataUpload }

// Run uploads the report-so-far as a JSON artifact.
func (s *MetadataUploadStep) Run(ctx context.Context, rep *Report) StepResult {
	s.logger.Info("uploading backup metadata")

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return FailedResult(OpMetadataUpload, err)
	}

	key := sink.Key(sink.CategoryReports, s.environment, s.now(), "backup-report.json")
	if err := s.sink.Write(ctx, key, payload, sink.ContentTypeJSON); err != nil {
		s.logger.Error("metadata upload failed", zap.Error(err))
		return FailedResult(OpMetadataUpload, err)
	}

	location := s.sink.Location(key)
	s.logger.Info("backup metadata uploaded", zap.String("location", location))

	return StepResult{
		Operation: OpMetadataUpload,
		Status:    StatusSuccess,
		Detail:    Detail{"location": location},
	}
}
