// Package coloring is the client of the external coloring service. The
// service receives the graph and answers with a node to color class mapping;
// how it computes that mapping is not this package's concern.
package coloring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"chromagraph/internal/domain"
)

// GeneratePath is the collaborator route that colors a graph
const GeneratePath = "/generate_graph"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 4 << 20

// Config holds collaborator settings
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Breaker  BreakerConfig
}

// BreakerConfig holds circuit breaker settings
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultConfig returns defaults for a collaborator at endpoint
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint: endpoint,
		Timeout:  15 * time.Second,
		Breaker: BreakerConfig{
			Name:         "coloring",
			MaxRequests:  1,
			Interval:     30 * time.Second,
			Timeout:      30 * time.Second,
			MinRequests:  3,
			FailureRatio: 0.6,
		},
	}
}

// Request is the body posted to the collaborator
type Request struct {
	Nodes     []string    `json:"nodes"`
	Edges     [][2]string `json:"edges"`
	Threshold float64     `json:"threshold,omitempty"`
}

// Response is the collaborator's success body
type Response struct {
	Coloring map[string]int `json:"coloring"`
}

// NewRequest builds the request body for graph
func NewRequest(graph domain.Graph) Request {
	nodes := graph.Nodes
	if nodes == nil {
		nodes = []string{}
	}
	return Request{
		Nodes:     nodes,
		Edges:     graph.EdgePairs(),
		Threshold: graph.Threshold,
	}
}

// Client posts graphs to the coloring service
type Client struct {
	mu       sync.RWMutex
	endpoint string
	timeout  time.Duration

	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the collaborator described by cfg
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		timeout:  cfg.Timeout,
		http:     &http.Client{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(cfg.Breaker, c.logger)
	return c
}

func newBreaker(cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
		// a caller that went away says nothing about the collaborator
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// Reconfigure points the client at a new endpoint and timeout
func (c *Client) Reconfigure(endpoint string, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = strings.TrimRight(endpoint, "/")
	c.timeout = timeout
}

// Endpoint returns the collaborator base URL
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// BreakerState returns the circuit breaker state name
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Color submits graph and returns the coloring. Every failure (transport,
// non-2xx status, undecodable body, open breaker) wraps domain.ErrNetworkFailure.
func (c *Client) Color(ctx context.Context, graph domain.Graph) (domain.Coloring, error) {
	c.mu.RLock()
	endpoint, timeout := c.endpoint, c.timeout
	c.mu.RUnlock()

	if endpoint == "" {
		return nil, fmt.Errorf("no coloring endpoint configured: %w", domain.ErrNetworkFailure)
	}

	body, err := json.Marshal(NewRequest(graph))
	if err != nil {
		return nil, fmt.Errorf("encode request: %v: %w", err, domain.ErrNetworkFailure)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		coloring, err := c.post(ctx, endpoint+GeneratePath, body)
		if err != nil {
			return nil, err
		}
		return coloring, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("coloring request short-circuited", zap.Error(err))
		}
		if errors.Is(err, domain.ErrNetworkFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%v: %w", err, domain.ErrNetworkFailure)
	}

	return result.(domain.Coloring), nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) (domain.Coloring, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %v: %w", err, domain.ErrNetworkFailure)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w: %w", url, err, domain.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %v: %w", err, domain.ErrNetworkFailure)
	}

	c.logger.Debug("coloring response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("coloring service returned %s: %w", resp.Status, domain.ErrNetworkFailure)
	}

	var parsed Response
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %v: %w", err, domain.ErrNetworkFailure)
	}
	if parsed.Coloring == nil {
		return nil, fmt.Errorf("response has no coloring: %w", domain.ErrNetworkFailure)
	}

	return domain.Coloring(parsed.Coloring), nil
}
