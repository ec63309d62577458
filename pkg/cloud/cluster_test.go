package cloud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeCluster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clusters/main", r.URL.Path)
		fmt.Fprint(w, `{"name":"main","status":"ACTIVE"}`)
	}))
	defer srv.Close()

	api := NewHTTPClusterAPI(srv.URL)
	info, err := api.DescribeCluster(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "main", info.Name)
	assert.Equal(t, ClusterStatusActive, info.Status)
}

func TestDescribeClusterNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	api := NewHTTPClusterAPI(srv.URL)
	_, err := api.DescribeCluster(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDescribeClusterUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	api := NewHTTPClusterAPI(srv.URL)
	_, err := api.DescribeCluster(context.Background(), "main")
	assert.Error(t, err)
}

func TestDescribeClusterBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer srv.Close()

	api := NewHTTPClusterAPI(srv.URL)
	_, err := api.DescribeCluster(context.Background(), "main")
	assert.Error(t, err)
}
