package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentscan/backup-orchestrator/pkg/cloud"
	"github.com/agentscan/backup-orchestrator/pkg/sink"
)

type fakeClusterAPI struct {
	status string
	err    error
}

func (f *fakeClusterAPI) DescribeCluster(_ context.Context, name string) (*cloud.ClusterInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &cloud.ClusterInfo{Name: name, Status: f.status}, nil
}

func TestClusterBackupStepActiveCluster(t *testing.T) {
	snk := sink.NewMemorySink()
	step := NewClusterBackupStep(&fakeClusterAPI{status: cloud.ClusterStatusActive}, snk, "main", "prod", zap.NewNop())

	res := step.Run(context.Background(), nil)

	assert.Equal(t, OpClusterBackup, res.Operation)
	assert.Equal(t, StatusSuccess, res.Status)

	location, ok := res.Detail["backup_location"].(string)
	require.True(t, ok)
	assert.Contains(t, location, "k8s-backups/prod/")
	assert.True(t, strings.HasSuffix(location, "cluster-backup.tar.gz"))

	keys := snk.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "k8s-backups/prod/")
	assert.True(t, strings.HasSuffix(keys[0], "metadata.json"))

	payload, ok := snk.Get(keys[0])
	require.True(t, ok)
	var manifest map[string]any
	require.NoError(t, json.Unmarshal(payload, &manifest))
	assert.Equal(t, "main", manifest["cluster_name"])
	assert.Equal(t, "full", manifest["backup_type"])
}

func TestClusterBackupStepSkipsInactiveCluster(t *testing.T) {
	snk := sink.NewMemorySink()
	step := NewClusterBackupStep(&fakeClusterAPI{status: "UPDATING"}, snk, "main", "prod", zap.NewNop())

	res := step.Run(context.Background(), nil)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Contains(t, res.Detail["message"], "UPDATING")
	assert.Empty(t, snk.Keys(), "skipped backups write nothing")
}

func TestClusterBackupStepDescribeFailure(t *testing.T) {
	step := NewClusterBackupStep(&fakeClusterAPI{err: fmt.Errorf("access denied")}, sink.NewMemorySink(), "main", "prod", zap.NewNop())

	res := step.Run(context.Background(), nil)

	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Detail["error"], "access denied")
}

func TestClusterBackupStepSinkFailure(t *testing.T) {
	snk := sink.NewMemorySink()
	snk.FailWith = fmt.Errorf("bucket unavailable")
	step := NewClusterBackupStep(&fakeClusterAPI{status: cloud.ClusterStatusActive}, snk, "main", "prod", zap.NewNop())

	res := step.Run(context.Background(), nil)

	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Detail["error"], "bucket unavailable")
}
