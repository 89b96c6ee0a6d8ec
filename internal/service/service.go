package service

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"chromagraph/internal/codec"
	"chromagraph/internal/domain"
	"chromagraph/internal/layout"
	"chromagraph/internal/metrics"
	"chromagraph/internal/store"
)

// Edge origins recorded in metrics
const (
	originText   = "text"
	originDrag   = "drag"
	originRandom = "random"
	originImport = "import"
)

// GraphService provides the edit operations exposed to users
type GraphService struct {
	store    *store.Store
	eventBus *EventBus
	metrics  *metrics.Collector
	logger   *zap.Logger
	radius   float64
}

// Option configures a GraphService
type Option func(*GraphService)

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.Collector) Option {
	return func(s *GraphService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *GraphService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRadius sets the layout radius
func WithRadius(radius float64) Option {
	return func(s *GraphService) {
		if radius > 0 {
			s.radius = radius
		}
	}
}

// NewGraphService creates a new graph service
func NewGraphService(st *store.Store, eventBus *EventBus, opts ...Option) *GraphService {
	s := &GraphService{
		store:    st,
		eventBus: eventBus,
		metrics:  metrics.NewCollector("chromagraph"),
		logger:   zap.NewNop(),
		radius:   layout.DefaultRadius,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns a snapshot of the graph
func (s *GraphService) Graph() domain.Graph {
	return s.store.Snapshot()
}

// Radius returns the layout radius
func (s *GraphService) Radius() float64 {
	return s.radius
}

// Placements returns the rendered position of every node
func (s *GraphService) Placements() []layout.Placement {
	return layout.Place(s.store.Nodes(), s.radius)
}

// AddNodes adds the nodes named in text
func (s *GraphService) AddNodes(text string) []string {
	added := s.store.AddNodes(text)
	if len(added) == 0 {
		return added
	}

	s.metrics.NodesAdded.Add(float64(len(added)))
	s.publish(EventNodesAdded, map[string]any{"nodes": added})
	return added
}

// RemoveNodes removes the nodes named in text and their edges
func (s *GraphService) RemoveNodes(text string) ([]string, error) {
	edgesBefore := len(s.store.Edges())
	removed, err := s.store.RemoveNodes(text)
	if err != nil {
		s.editFailed("node_not_found", err)
		return nil, err
	}

	cascaded := edgesBefore - len(s.store.Edges())
	s.metrics.NodesRemoved.Add(float64(len(removed)))
	if cascaded > 0 {
		s.metrics.EdgesRemoved.Add(float64(cascaded))
	}
	s.publish(EventNodesRemoved, map[string]any{"nodes": removed})
	return removed, nil
}

// AddEdges adds the valid edges named in text
func (s *GraphService) AddEdges(text string) ([]domain.Edge, error) {
	added, err := s.store.AddEdges(text)
	if err != nil {
		s.editFailed("invalid_edge", err)
		return nil, err
	}

	s.metrics.EdgesAdded.WithLabelValues(originText).Add(float64(len(added)))
	s.publish(EventEdgesAdded, map[string]any{"edges": added})
	return added, nil
}

// RemoveEdges removes the existing edges named in text
func (s *GraphService) RemoveEdges(text string) ([]domain.Edge, error) {
	removed, err := s.store.RemoveEdges(text)
	if err != nil {
		s.editFailed("edge_not_found", err)
		return nil, err
	}

	s.metrics.EdgesRemoved.Add(float64(len(removed)))
	s.publish(EventEdgesRemoved, map[string]any{"edges": removed})
	return removed, nil
}

// AddEdgeDirect connects a and b if possible; it never fails loudly
func (s *GraphService) AddEdgeDirect(a, b string) bool {
	edge, ok := s.store.AddEdgeDirect(a, b)
	if !ok {
		s.logger.Debug("drag edge ignored", zap.String("from", a), zap.String("to", b))
		return false
	}

	s.metrics.EdgesAdded.WithLabelValues(originDrag).Inc()
	s.publish(EventEdgesAdded, map[string]any{"edges": []domain.Edge{edge}})
	return true
}

// RandomEdges connects unconnected pairs with the given probability. A zero
// seed uses the current time.
func (s *GraphService) RandomEdges(seed int64, probability float64) []domain.Edge {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	added := s.store.RandomEdges(rand.New(rand.NewSource(seed)), probability)
	if len(added) == 0 {
		return added
	}

	s.metrics.EdgesAdded.WithLabelValues(originRandom).Add(float64(len(added)))
	s.publish(EventEdgesAdded, map[string]any{"edges": added, "seed": seed})
	return added
}

// SetThreshold sets the value forwarded to the coloring service
func (s *GraphService) SetThreshold(threshold float64) {
	s.store.SetThreshold(threshold)
	s.publish(EventThresholdSet, map[string]float64{"threshold": threshold})
}

// Clear removes everything
func (s *GraphService) Clear() {
	s.store.Clear()
	s.publish(EventGraphCleared, map[string]string{"action": "cleared"})
}

// Import merges graph data in the given format
func (s *GraphService) Import(format string, r io.Reader) (store.ImportResult, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return store.ImportResult{}, err
	}

	fragment, err := c.Parse(r)
	if err != nil {
		return store.ImportResult{}, err
	}

	result, err := s.store.Import(fragment)
	if err != nil {
		return store.ImportResult{}, err
	}

	s.metrics.NodesAdded.Add(float64(result.NodesAdded))
	s.metrics.EdgesAdded.WithLabelValues(originImport).Add(float64(result.EdgesAdded))
	s.publish(EventGraphImported, result)
	return result, nil
}

// Export writes the graph structure in the given format
func (s *GraphService) Export(format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	graph := s.store.Snapshot()
	var buf bytes.Buffer
	if err := c.Export(graph.Fragment(), &buf); err != nil {
		return fmt.Errorf("export %s: %w", c.Format(), err)
	}

	_, err = buf.WriteTo(w)
	return err
}

func (s *GraphService) editFailed(kind string, err error) {
	s.metrics.EditErrors.WithLabelValues(kind).Inc()
	s.logger.Debug("edit rejected", zap.String("kind", kind), zap.Error(err))
}

func (s *GraphService) publish(eventType EventType, payload interface{}) {
	graph := s.store.Snapshot()
	s.metrics.SetGraphSize(len(graph.Nodes), len(graph.Edges))
	s.eventBus.Publish(Event{
		Type:    eventType,
		Version: graph.Version,
		Payload: payload,
	})
}
