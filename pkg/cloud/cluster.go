// Package cloud holds the read-only collaborators the coordinator talks to:
// the cluster control plane and the snapshot inventory of managed databases.
// The coordinator never mutates these backends; it only describes and lists.
package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ClusterStatusActive is the only status under which cluster backups run.
const ClusterStatusActive = "ACTIVE"

// ClusterInfo describes the current state of a managed cluster.
type ClusterInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ClusterAPI describes a cluster control plane.
type ClusterAPI interface {
	DescribeCluster(ctx context.Context, name string) (*ClusterInfo, error)
}

// HTTPClusterAPI queries a cluster status endpoint over HTTP.
type HTTPClusterAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClusterAPI creates a cluster API client for the given base URL,
// e.g. "http://controlplane:10080".
func NewHTTPClusterAPI(baseURL string) *HTTPClusterAPI {
	return &HTTPClusterAPI{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DescribeCluster fetches the named cluster's status.
func (c *HTTPClusterAPI) DescribeCluster(ctx context.Context, name string) (*ClusterInfo, error) {
	url := fmt.Sprintf("%s/clusters/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build describe request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach cluster API at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cluster describe failed with status: %d", resp.StatusCode)
	}

	var info ClusterInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode cluster info: %w", err)
	}

	return &info, nil
}
