package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromagraph/internal/coloring"
	"chromagraph/internal/config"
	"chromagraph/internal/domain"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvAddr, "")
	t.Setenv(config.EnvColoringEndpoint, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", t.TempDir())
	color.NoColor = true
}

func TestRunColor(t *testing.T) {
	isolateConfig(t)

	var got coloring.Request
	collab := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"coloring": map[string]int{"a": 0, "b": 1, "c": 0},
		})
	}))
	defer collab.Close()

	t.Run("prints one line per node", func(t *testing.T) {
		var out bytes.Buffer
		err := runColor(context.Background(), &out, colorOptions{
			nodes:     "a,b,c",
			edges:     "a-b,b-c",
			threshold: 0.5,
			endpoint:  collab.URL,
		}, true)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, got.Nodes)
		assert.Equal(t, [][2]string{{"a", "b"}, {"b", "c"}}, got.Edges)
		assert.Equal(t, 0.5, got.Threshold)

		text := out.String()
		assert.Contains(t, text, "nodes: a,b,c")
		assert.Contains(t, text, "edges: a-b,b-c")
		assert.Contains(t, text, "a: 0")
		assert.Contains(t, text, "b: 1")
		assert.Contains(t, text, "2 colors")
	})

	t.Run("loads graph file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "graph.yaml")
		require.NoError(t, os.WriteFile(path, []byte("nodes: [a, b, c]\nedges: [[a, b]]\n"), 0644))

		var out bytes.Buffer
		err := runColor(context.Background(), &out, colorOptions{file: path, endpoint: collab.URL}, false)
		require.NoError(t, err)
		assert.Equal(t, [][2]string{{"a", "b"}}, got.Edges)
	})

	t.Run("invalid edges fail", func(t *testing.T) {
		err := runColor(context.Background(), &bytes.Buffer{}, colorOptions{
			nodes:    "a",
			edges:    "a-z",
			endpoint: collab.URL,
		}, false)
		assert.ErrorIs(t, err, domain.ErrInvalidEdge)
	})

	t.Run("empty graph fails", func(t *testing.T) {
		err := runColor(context.Background(), &bytes.Buffer{}, colorOptions{endpoint: collab.URL}, false)
		assert.Error(t, err)
	})
}

func TestRunColorServiceDown(t *testing.T) {
	isolateConfig(t)

	collab := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer collab.Close()

	err := runColor(context.Background(), &bytes.Buffer{}, colorOptions{nodes: "a", endpoint: collab.URL}, false)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestColoringConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cc := coloringConfig(cfg.Coloring)

	assert.Equal(t, cfg.Coloring.Endpoint, cc.Endpoint)
	assert.Equal(t, cfg.Coloring.Timeout.Duration(), cc.Timeout)
	assert.Equal(t, cfg.Coloring.Breaker.FailureRatio, cc.Breaker.FailureRatio)
	assert.Equal(t, "coloring", cc.Breaker.Name)
}

func TestInitConfig(t *testing.T) {
	isolateConfig(t)

	t.Run("writes a loadable default config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "chromagraph.toml")

		var out bytes.Buffer
		require.NoError(t, initConfig(&out, path, false))
		assert.Contains(t, out.String(), path)

		cfg, loaded, err := config.LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, path, loaded)
		assert.Equal(t, config.DefaultConfig().Coloring.Endpoint, cfg.Coloring.Endpoint)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chromagraph.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0644))

		assert.Error(t, initConfig(&bytes.Buffer{}, path, false))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "9000")

		require.NoError(t, initConfig(&bytes.Buffer{}, path, true))
		cfg, _, err := config.LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig().Server.Addr, cfg.Server.Addr)
	})
}
