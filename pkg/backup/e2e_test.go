package backup

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/cloud"
	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

// fullPipeline wires the real steps against fake collaborators, the same
// shape buildOrchestrator produces in the CLI.
func fullPipeline(api cloud.ClusterAPI, inv cloud.SnapshotInventory, snk sink.Sink) *Orchestrator {
	logger := zap.NewNop()
	return NewOrchestrator("prod", "main", logger,
		NewClusterBackupStep(api, snk, "main", "prod", logger),
		NewBackupVerificationStep(inv, "prod", logger),
		NewApplicationDataBackupStep(DefaultCatalogue(), nil, snk, "prod", logger),
		NewMetadataUploadStep(snk, "prod", logger),
	)
}

func healthyInventory() *fakeInventory {
	return &fakeInventory{
		instances: []cloud.DBInstance{{ID: "prod-db-1", RetentionDays: 7}},
		snapshots: map[string]int{"prod-db-1": 2},
	}
}

func TestFullRunAllOperationsSucceed(t *testing.T) {
	snk := sink.NewMemorySink()
	orch := fullPipeline(&fakeClusterAPI{status: cloud.ClusterStatusActive}, healthyInventory(), snk)

	rep := orch.Run(context.Background())

	assert.Equal(t, StatusSuccess, rep.OverallStatus)
	require.Len(t, rep.Steps, 4)
	assert.Equal(t, OpClusterBackup, rep.Steps[0].Operation)
	assert.Equal(t, OpBackupVerification, rep.Steps[1].Operation)
	assert.Equal(t, OpApplicationDataBackup, rep.Steps[2].Operation)
	assert.Equal(t, OpMetadataUpload, rep.Steps[3].Operation)

	// One artifact per writing step: cluster metadata, app manifest,
	// persisted report.
	keys := snk.Keys()
	assert.Len(t, keys, 3)

	var reportKey string
	for _, k := range keys {
		if strings.HasPrefix(k, sink.CategoryReports+"/prod/") {
			reportKey = k
		}
	}
	require.NotEmpty(t, reportKey, "persisted report missing from %v", keys)

	payload, ok := snk.Get(reportKey)
	require.True(t, ok)
	var persisted Report
	require.NoError(t, json.Unmarshal(payload, &persisted))
	assert.Equal(t, rep.RunID, persisted.RunID)
	require.Len(t, persisted.Steps, 3, "durable copy excludes the upload's own record")
	assert.Empty(t, persisted.OverallStatus)
}

func TestFullRunInactiveClusterIsStillHealthy(t *testing.T) {
	snk := sink.NewMemorySink()
	orch := fullPipeline(&fakeClusterAPI{status: "CREATING"}, healthyInventory(), snk)

	rep := orch.Run(context.Background())

	assert.Equal(t, StatusSuccess, rep.OverallStatus)
	require.Len(t, rep.Steps, 4)
	assert.Equal(t, StatusSkipped, rep.Steps[0].Status)
	for _, res := range rep.Steps[1:] {
		assert.Equal(t, StatusSuccess, res.Status)
	}
}

func TestFullRunDisabledRetentionFailsRun(t *testing.T) {
	snk := sink.NewMemorySink()
	inv := &fakeInventory{
		instances: []cloud.DBInstance{
			{ID: "prod-db-1", RetentionDays: 0},
			{ID: "prod-db-2", RetentionDays: 7},
		},
		snapshots: map[string]int{"prod-db-2": 1},
	}
	orch := fullPipeline(&fakeClusterAPI{status: cloud.ClusterStatusActive}, inv, snk)

	rep := orch.Run(context.Background())

	assert.Equal(t, StatusFailed, rep.OverallStatus)
	assert.Equal(t, StatusFailed, rep.Steps[1].Status)
	// The remaining steps ran regardless.
	assert.Equal(t, StatusSuccess, rep.Steps[2].Status)
	assert.Equal(t, StatusSuccess, rep.Steps[3].Status)
}
