package coloring

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromagraph/internal/domain"
)

func testGraph() domain.Graph {
	return domain.Graph{
		Nodes: []string{"a", "b", "c"},
		Edges: []domain.Edge{domain.NewEdge("a", "b"), domain.NewEdge("b", "c")},
	}
}

func TestColorSuccess(t *testing.T) {
	var received Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, GeneratePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"coloring":{"a":0,"b":1,"c":0}}`))
	}))
	defer srv.Close()

	client := NewClient(DefaultConfig(srv.URL + "/"))
	coloring, err := client.Color(context.Background(), testGraph())
	require.NoError(t, err)

	assert.Equal(t, domain.Coloring{"a": 0, "b": 1, "c": 0}, coloring)
	assert.Equal(t, []string{"a", "b", "c"}, received.Nodes)
	assert.Equal(t, [][2]string{{"a", "b"}, {"b", "c"}}, received.Edges)
	assert.Zero(t, received.Threshold)
}

func TestRequestBodyShape(t *testing.T) {
	t.Run("threshold omitted when zero", func(t *testing.T) {
		data, err := json.Marshal(NewRequest(testGraph()))
		require.NoError(t, err)
		assert.JSONEq(t, `{"nodes":["a","b","c"],"edges":[["a","b"],["b","c"]]}`, string(data))
	})

	t.Run("threshold forwarded when set", func(t *testing.T) {
		g := testGraph()
		g.Threshold = 2.5
		data, err := json.Marshal(NewRequest(g))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"threshold":2.5`)
	})

	t.Run("empty graph encodes empty arrays", func(t *testing.T) {
		data, err := json.Marshal(NewRequest(domain.Graph{}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
	})
}

func TestColorFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"client error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad", http.StatusBadRequest)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"coloring":`))
		}},
		{"missing coloring", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(DefaultConfig(srv.URL))
			_, err := client.Color(context.Background(), testGraph())
			assert.ErrorIs(t, err, domain.ErrNetworkFailure)
		})
	}
}

func TestColorTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(DefaultConfig(url))
	_, err := client.Color(context.Background(), testGraph())
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestColorTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	client := NewClient(cfg)

	_, err := client.Color(context.Background(), testGraph())
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestColorNoEndpoint(t *testing.T) {
	client := NewClient(DefaultConfig(""))
	_, err := client.Color(context.Background(), testGraph())
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.Breaker.MinRequests = 2
	cfg.Breaker.FailureRatio = 0.5
	client := NewClient(cfg)

	for i := 0; i < 2; i++ {
		_, err := client.Color(context.Background(), testGraph())
		require.ErrorIs(t, err, domain.ErrNetworkFailure)
	}
	assert.Equal(t, "open", client.BreakerState())

	_, err := client.Color(context.Background(), testGraph())
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the server")
}

func TestCanceledRequestKeepsBreakerClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"coloring":{}}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.Breaker.MinRequests = 1
	cfg.Breaker.FailureRatio = 0.5
	client := NewClient(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 3; i++ {
		_, err := client.Color(ctx, testGraph())
		require.ErrorIs(t, err, domain.ErrNetworkFailure)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", client.BreakerState())
}

func TestUnencodableRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	graph := testGraph()
	graph.Threshold = math.NaN()

	_, err := NewClient(DefaultConfig(srv.URL)).Color(context.Background(), graph)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Equal(t, int32(0), calls.Load())
}

func TestReconfigure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"coloring":{"a":0}}`))
	}))
	defer srv.Close()

	client := NewClient(DefaultConfig("http://127.0.0.1:1"))
	client.Reconfigure(srv.URL+"/", time.Second)
	assert.Equal(t, srv.URL, client.Endpoint())

	coloring, err := client.Color(context.Background(), domain.Graph{Nodes: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Coloring{"a": 0}, coloring)
}
