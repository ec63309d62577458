// Package config loads the coordinator's process-wide configuration once at
// startup. Values come from the environment, optionally overlaid on a TOML
// file; required values missing at load time fail fast rather than mid-run.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable names. These match the deployment that invokes the
// coordinator.
const (
	EnvEnvironment   = "ENVIRONMENT"
	EnvClusterName   = "CLUSTER_NAME"
	EnvBucket        = "S3_BUCKET"
	EnvRegion        = "AWS_REGION"
	EnvEndpoint      = "S3_ENDPOINT"
	EnvClusterAPIURL = "CLUSTER_API_URL"
	EnvSnapshotDSN   = "SNAPSHOT_DSN"
	EnvCataloguePath = "DATA_CATALOGUE"
	EnvWebhookURL    = "WEBHOOK_URL"
	EnvListenAddr    = "LISTEN_ADDR"
)

// Config is the immutable run context handed to the orchestrator. It is
// passed by value; nothing reads the environment after Load returns.
type Config struct {
	Environment string `toml:"environment"`
	ClusterName string `toml:"cluster_name"`
	Bucket      string `toml:"s3_bucket"`
	Region      string `toml:"aws_region"`
	Endpoint    string `toml:"s3_endpoint"`

	ClusterAPIURL string `toml:"cluster_api_url"`
	SnapshotDSN   string `toml:"snapshot_dsn"`
	CataloguePath string `toml:"data_catalogue"`
	WebhookURL    string `toml:"webhook_url"`

	ListenAddr string `toml:"listen_addr"`
}

// Load builds the configuration. When path is non-empty the TOML file is
// read first; environment variables override file values; validation runs
// last.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overlay := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	overlay(&cfg.Environment, EnvEnvironment)
	overlay(&cfg.ClusterName, EnvClusterName)
	overlay(&cfg.Bucket, EnvBucket)
	overlay(&cfg.Region, EnvRegion)
	overlay(&cfg.Endpoint, EnvEndpoint)
	overlay(&cfg.ClusterAPIURL, EnvClusterAPIURL)
	overlay(&cfg.SnapshotDSN, EnvSnapshotDSN)
	overlay(&cfg.CataloguePath, EnvCataloguePath)
	overlay(&cfg.WebhookURL, EnvWebhookURL)
	overlay(&cfg.ListenAddr, EnvListenAddr)
}

// Validate reports every missing required value at once.
func (c Config) Validate() error {
	var missing []string
	if c.Environment == "" {
		missing = append(missing, EnvEnvironment)
	}
	if c.ClusterName == "" {
		missing = append(missing, EnvClusterName)
	}
	if c.Bucket == "" {
		missing = append(missing, EnvBucket)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
