package integration

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 这些测试假设 batch-server 已经在运行 (例如 make run 或 Docker)
// 运行命令: go test -v ./tests/integration/...
func baseURL() string {
	if u := os.Getenv("BATCH_SENDER_URL"); u != "" {
		return strings.TrimRight(u, "/")
	}
	return "http://localhost:3001"
}

func TestHealthCheck(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL() + "/health")
	if err != nil {
		t.Skip("Skipping integration test: server not running? " + err.Error())
		return
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPrepareSend_ValidationError(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(baseURL()+"/prepare-send", "application/json", strings.NewReader(`{"addresses":[],"amount":"1"}`))
	if err != nil {
		t.Skip("Skipping integration test: server not running? " + err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		t.Skip("rate limited")
	}
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}
