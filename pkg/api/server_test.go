package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/graphlens/pkg/logging"
	"github.com/dd0wney/graphlens/pkg/metrics"
)

// End-to-end pass over the full server stack: health, GraphQL, and
// metrics over real HTTP.
func TestServerEndToEnd(t *testing.T) {
	state := newState(t)
	met := metrics.NewRegistry()

	srv, err := NewServer(state, "127.0.0.1:0", logging.NewNopLogger(), met)
	require.NoError(t, err, "Failed to build server")

	ts := httptest.NewServer(srv.server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err, "Health request failed")
	require.Equal(t, http.StatusOK, resp.StatusCode, "Health should succeed")

	var health struct {
		Status string `json:"status"`
		Nodes  int    `json:"nodes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health), "Failed to decode health response")
	resp.Body.Close()
	require.Equal(t, "ok", health.Status)
	require.Equal(t, 2, health.Nodes)

	body, err := json.Marshal(GraphQLRequest{Query: `{ nodes { id x y } centerNodeId }`})
	require.NoError(t, err)

	resp, err = http.Post(ts.URL+"/graphql", "application/json", bytes.NewReader(body))
	require.NoError(t, err, "GraphQL request failed")
	require.Equal(t, http.StatusOK, resp.StatusCode, "Query should succeed")

	var gql GraphQLResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gql), "Failed to decode query response")
	resp.Body.Close()
	require.Empty(t, gql.Errors, "Query should have no errors")

	data, ok := gql.Data.(map[string]any)
	require.True(t, ok, "Response should carry a data object")
	require.Equal(t, "a", data["centerNodeId"])

	nodes, ok := data["nodes"].([]any)
	require.True(t, ok, "Response should carry nodes")
	require.Len(t, nodes, 2)

	// The middleware counted the requests above.
	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err, "Metrics request failed")
	require.Equal(t, http.StatusOK, resp.StatusCode, "Metrics should succeed")

	exposition, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.True(t, strings.Contains(string(exposition), "graphlens_http_requests_total"),
		"Exposition should include request counts")
}
