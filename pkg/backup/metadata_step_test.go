package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

func TestMetadataUploadPersistsReportSoFar(t *testing.T) {
	snk := sink.NewMemorySink()
	step := NewMetadataUploadStep(snk, "prod", zap.NewNop())
	step.now = func() time.Time {
		return time.Date(2026, 8, 23, 4, 5, 6, 0, time.UTC)
	}

	rep := &Report{
		RunID:       "run-1",
		Timestamp:   time.Date(2026, 8, 23, 4, 0, 0, 0, time.UTC),
		Environment: "prod",
		ClusterName: "main",
		Steps: []StepResult{
			{Operation: OpClusterBackup, Status: StatusSuccess},
			{Operation: OpBackupVerification, Status: StatusSuccess},
		},
	}

	res := step.Run(context.Background(), rep)

	assert.Equal(t, OpMetadataUpload, res.Operation)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "mem://backup-reports/prod/20260823-040506/backup-report.json", res.Detail["location"])

	payload, ok := snk.Get("backup-reports/prod/20260823-040506/backup-report.json")
	require.True(t, ok)

	var persisted Report
	require.NoError(t, json.Unmarshal(payload, &persisted))
	assert.Equal(t, "run-1", persisted.RunID)

	// The durable copy precedes the upload's own result and the overall
	// status; it records only the steps that ran before it.
	require.Len(t, persisted.Steps, 2)
	assert.Empty(t, persisted.OverallStatus)
	assert.False(t, strings.Contains(string(payload), OpMetadataUpload))
}

func TestMetadataUploadSinkFailure(t *testing.T) {
	snk := sink.NewMemorySink()
	snk.FailWith = fmt.Errorf("put rejected")
	step := NewMetadataUploadStep(snk, "prod", zap.NewNop())

	res := step.Run(context.Background(), &Report{})

	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Detail["error"], "put rejected")
}
