package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")

	a.NodesAdded.Add(3)
	assert.Contains(t, scrape(t, a), "test_nodes_added_total 3")
	assert.Contains(t, scrape(t, b), "test_nodes_added_total 0")
}

func TestObserveColoring(t *testing.T) {
	c := NewCollector("test")
	c.ObserveColoring(ResultSuccess, 10*time.Millisecond)
	c.ObserveColoring(ResultStale, 0)

	body := scrape(t, c)
	assert.Contains(t, body, `test_coloring_requests_total{result="success"} 1`)
	assert.Contains(t, body, `test_coloring_requests_total{result="stale"} 1`)
	assert.Contains(t, body, "test_coloring_request_duration_seconds_count 1")
}

func TestGraphSize(t *testing.T) {
	c := NewCollector("chromagraph")
	c.SetGraphSize(4, 2)

	body := scrape(t, c)
	assert.Contains(t, body, "chromagraph_graph_nodes 4")
	assert.Contains(t, body, "chromagraph_graph_edges 2")
}
