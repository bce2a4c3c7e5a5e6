package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudpulse-dev/cloudpulse/db"
	"github.com/cloudpulse-dev/cloudpulse/internal/probes"
	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/cloudpulse-dev/cloudpulse/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(t.TempDir()+"/test.db"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	checks := services.NewHealthCheckService(database, probes.NewSeededProber(7))
	r := NewRouter(NewDeps(database, checks))

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return ts, database
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestResourceLifecycleOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	// Register.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/resources", map[string]interface{}{
		"name":     "prod-web-server-01",
		"type":     "compute_instance",
		"provider": "aws",
		"region":   "us-east-1",
		"cloud_id": "i-0a1b2c3d4e5f60001",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "unknown", created.Status)

	// Fetch by id and by provider-native id.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/resources/%d", ts.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/resources/cloud/i-0a1b2c3d4e5f60001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/resources/cloud/i-unknown", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Operator status override.
	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/resources/%d/status", ts.URL, created.ID), map[string]string{
		"status": "terminated",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overridden struct {
		Status string `json:"status"`
	}
	decode(t, resp, &overridden)
	assert.Equal(t, "terminated", overridden.Status)

	// Delete.
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/resources/%d", ts.URL, created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/resources/%d", ts.URL, created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestResourceValidationOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/resources", map[string]interface{}{
		"name": "missing everything else",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestIncidentCreateForcesOpenOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/incidents", map[string]interface{}{
		"title":    "API latency spike",
		"severity": "high",
		"status":   "resolved",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var incident struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &incident)
	assert.Equal(t, "open", incident.Status)

	// Acknowledge then resolve.
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/incidents/%d/ack", ts.URL, incident.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/incidents/%d/resolve", ts.URL, incident.ID), map[string]string{
		"root_cause": "cache stampede",
		"resolution": "added request coalescing",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var resolved struct {
		Status     string  `json:"status"`
		ResolvedAt *string `json:"resolved_at"`
	}
	decode(t, resp, &resolved)
	assert.Equal(t, "resolved", resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestAcknowledgeMissingIncidentOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/incidents/9999/ack", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decode(t, resp, &body)
	assert.Contains(t, body.Error, "Incident")
	assert.Contains(t, body.Error, "9999")
}

func TestOnDemandProbeOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/resources", map[string]interface{}{
		"name":     "prod-checkout-fn",
		"type":     "serverless_function",
		"provider": "aws",
		"region":   "us-west-2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decode(t, resp, &created)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/healthchecks/resource/%d/run", ts.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var check struct {
		ResourceID uint   `json:"resource_id"`
		Status     string `json:"status"`
	}
	decode(t, resp, &check)
	assert.Equal(t, created.ID, check.ResourceID)
	assert.True(t, types.HealthStatus(check.Status).IsValid())

	// The probe updated the resource's derived status.
	var stored struct {
		Status        string  `json:"status"`
		LastCheckedAt *string `json:"last_checked_at"`
	}
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/resources/%d", ts.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &stored)
	assert.NotEqual(t, "unknown", stored.Status)
	assert.NotNil(t, stored.LastCheckedAt)
}

func TestDashboardOverHTTP(t *testing.T) {
	ts, database := newTestServer(t)

	resources := services.NewResourceService(database)
	for i, status := range []types.ResourceStatus{
		types.ResourceStatusHealthy, types.ResourceStatusHealthy, types.ResourceStatusHealthy,
		types.ResourceStatusUnhealthy,
	} {
		_, err := resources.Create(&services.ResourceRequest{
			Name:     fmt.Sprintf("node-%d", i),
			Type:     types.ResourceTypeComputeInstance,
			Provider: "aws",
			Region:   "us-east-1",
			Status:   status,
		})
		require.NoError(t, err)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary struct {
		TotalResources    int64    `json:"total_resources"`
		HealthyResources  int64    `json:"healthy_resources"`
		OverallHealthPct  float64  `json:"overall_health_percent"`
		MTTRMinutes       *float64 `json:"mttr_minutes"`
		AvgResponseTimeMs *float64 `json:"avg_response_time_ms"`
	}
	decode(t, resp, &summary)

	assert.EqualValues(t, 4, summary.TotalResources)
	assert.EqualValues(t, 3, summary.HealthyResources)
	assert.Equal(t, 75.0, summary.OverallHealthPct)
	assert.Nil(t, summary.MTTRMinutes)
	assert.Nil(t, summary.AvgResponseTimeMs)
}
