package backup

import (
	"time"
)

// Status is the outcome of a single backup operation or of a whole run.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusWarning Status = "WARNING"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

// Detail carries operation-specific diagnostic data. Keys are chosen by the
// step that produced the result; values are strings, numbers, or nested
// structures that serialize cleanly to JSON.
type Detail map[string]any

// StepResult records the outcome of one step invocation. It is created once
// by the step and never modified afterwards.
type StepResult struct {
	Operation string `json:"operation"`
	Status    Status `json:"status"`
	Detail    Detail `json:"detail,omitempty"`
}

// FailedResult builds a FAILED result carrying the underlying error text.
func FailedResult(operation string, err error) StepResult {
	return StepResult{
		Operation: operation,
		Status:    StatusFailed,
		Detail:    Detail{"error": err.Error()},
	}
}

// SkippedResult builds a SKIPPED result with a human-readable reason.
func SkippedResult(operation, reason string) StepResult {
	return StepResult{
		Operation: operation,
		Status:    StatusSkipped,
		Detail:    Detail{"message": reason},
	}
}

// Report is the complete audit record of one orchestration run. The steps
// slice preserves execution order. A report never outlives its run; nothing
// is carried over between runs.
type Report struct {
	RunID         string       `json:"run_id"`
	Timestamp     time.Time    `json:"timestamp"`
	Environment   string       `json:"environment"`
	ClusterName   string       `json:"cluster_name"`
	Steps         []StepResult `json:"backup_operations"`
	OverallStatus Status       `json:"overall_status,omitempty"`
	Error         string       `json:"error,omitempty"`
}
