package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"chromagraph/internal/domain"
	"chromagraph/internal/metrics"
	"chromagraph/internal/store"
)

var (
	// ErrColoringInFlight is returned when a submission is already outstanding
	ErrColoringInFlight = errors.New("a coloring request is already in progress")
	// ErrStaleColoring is returned when the graph changed while the request was out
	ErrStaleColoring = errors.New("graph changed while the coloring was computed")
)

// Colorer computes a coloring for a graph
type Colorer interface {
	Color(ctx context.Context, graph domain.Graph) (domain.Coloring, error)
}

// breakerReporter is implemented by colorers guarded by a circuit breaker
type breakerReporter interface {
	BreakerState() string
}

// ColoringService submits the graph to the coloring service
type ColoringService struct {
	store    *store.Store
	colorer  Colorer
	eventBus *EventBus
	metrics  *metrics.Collector
	logger   *zap.Logger
	inFlight atomic.Bool
}

// NewColoringService creates a coloring service
func NewColoringService(st *store.Store, colorer Colorer, eventBus *EventBus, m *metrics.Collector, logger *zap.Logger) *ColoringService {
	if m == nil {
		m = metrics.NewCollector("chromagraph")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ColoringService{
		store:    st,
		colorer:  colorer,
		eventBus: eventBus,
		metrics:  m,
		logger:   logger,
	}
}

// InFlight reports whether a submission is outstanding
func (s *ColoringService) InFlight() bool {
	return s.inFlight.Load()
}

// BreakerState returns the colorer's circuit breaker state, "" when it has none
func (s *ColoringService) BreakerState() string {
	if b, ok := s.colorer.(breakerReporter); ok {
		return b.BreakerState()
	}
	return ""
}

// Generate submits the current graph and stores the returned coloring. On any
// failure the store is left untouched.
func (s *ColoringService) Generate(ctx context.Context) (domain.Coloring, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.ObserveColoring(metrics.ResultRejected, 0)
		return nil, ErrColoringInFlight
	}
	defer s.inFlight.Store(false)

	graph := s.store.Snapshot()
	start := time.Now()
	coloring, err := s.colorer.Color(ctx, graph)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveColoring(metrics.ResultFailure, elapsed)
		s.logger.Warn("coloring request failed",
			zap.Int("nodes", len(graph.Nodes)),
			zap.Int("edges", len(graph.Edges)),
			zap.Error(err))
		return nil, err
	}

	if !s.store.SetColoringAt(graph.Version, coloring) {
		s.metrics.ObserveColoring(metrics.ResultStale, elapsed)
		s.logger.Info("discarding stale coloring",
			zap.Uint64("sent_version", graph.Version),
			zap.Uint64("current_version", s.store.Version()))
		return nil, ErrStaleColoring
	}

	s.metrics.ObserveColoring(metrics.ResultSuccess, elapsed)
	applied := s.store.Coloring()
	s.logger.Info("coloring applied",
		zap.Int("nodes", len(applied)),
		zap.Int("colors", applied.Classes()),
		zap.Duration("elapsed", elapsed))

	s.eventBus.Publish(Event{
		Type:    EventColoringUpdated,
		Version: graph.Version,
		Payload: map[string]int{"colors": applied.Classes()},
	})
	return applied, nil
}
