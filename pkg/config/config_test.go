package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvEnvironment, "prod")
	t.Setenv(EnvClusterName, "main")
	t.Setenv(EnvBucket, "agentscan-backups")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvRegion, "eu-west-1")
	t.Setenv(EnvWebhookURL, "https://hooks.example.com/x")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "main", cfg.ClusterName)
	assert.Equal(t, "agentscan-backups", cfg.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "https://hooks.example.com/x", cfg.WebhookURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadFailsFastOnMissingRequired(t *testing.T) {
	t.Setenv(EnvEnvironment, "prod")
	// CLUSTER_NAME and S3_BUCKET unset.
	t.Setenv(EnvClusterName, "")
	t.Setenv(EnvBucket, "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvClusterName)
	assert.Contains(t, err.Error(), EnvBucket)
}

func TestLoadTOMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
environment = "staging"
cluster_name = "main"
s3_bucket = "file-bucket"
snapshot_dsn = "user@tcp(db:3306)/backups"
listen_addr = ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv(EnvBucket, "env-bucket")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "env-bucket", cfg.Bucket, "environment overrides the file")
	assert.Equal(t, "user@tcp(db:3306)/backups", cfg.SnapshotDSN)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	setRequiredEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("environment = [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
