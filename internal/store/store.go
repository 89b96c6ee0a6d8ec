// Package store holds the canonical graph state of the editor: the ordered node
// set, the edge set and the coloring attached to them.
//
// Store is an owned container. It is created once, injected into the services
// that need it, and mutated only through its methods, which keep three
// invariants: every edge joins two existing, distinct nodes; no two edges join
// the same unordered pair; and the coloring never describes a graph other than
// the current one (any node or edge change drops it).
package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chromagraph/internal/domain"
	"chromagraph/internal/parser"
)

// Store is the mutex-guarded graph state
type Store struct {
	mu        sync.RWMutex
	nodes     []string
	nodeSet   map[string]struct{}
	edges     []domain.Edge
	edgeIndex map[domain.EdgeID]struct{}
	coloring  domain.Coloring
	threshold float64
	version   uint64
	logger    *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for mutation tracing
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		nodeSet:   make(map[string]struct{}),
		edgeIndex: make(map[domain.EdgeID]struct{}),
		coloring:  domain.Coloring{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNodes adds every new node named in text, preserving first-seen order.
// Empty and already present tokens are skipped; the added ids are returned.
func (s *Store) AddNodes(text string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := s.addNodesLocked(parser.ParseNodeList(text))
	if len(added) > 0 {
		s.touchLocked()
		s.logger.Debug("nodes added", zap.Strings("nodes", added))
	}
	return added
}

// RemoveNodes removes the nodes named in text together with every incident edge.
// It fails with domain.ErrNodeNotFound when none of them exists.
func (s *Store) RemoveNodes(text string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[string]struct{})
	removed := make([]string, 0)
	for _, id := range parser.ParseNodeList(text) {
		if _, ok := s.nodeSet[id]; !ok {
			continue
		}
		if _, dup := doomed[id]; dup {
			continue
		}
		doomed[id] = struct{}{}
		removed = append(removed, id)
	}

	if len(removed) == 0 {
		return nil, fmt.Errorf("remove nodes %q: %w", text, domain.ErrNodeNotFound)
	}

	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if _, gone := doomed[n]; gone {
			delete(s.nodeSet, n)
			continue
		}
		kept = append(kept, n)
	}
	s.nodes = kept

	dropped := s.filterEdgesLocked(func(e domain.Edge) bool {
		_, aGone := doomed[e.A]
		_, bGone := doomed[e.B]
		return aGone || bGone
	})

	s.touchLocked()
	s.logger.Debug("nodes removed",
		zap.Strings("nodes", removed),
		zap.Int("edges_dropped", len(dropped)))
	return removed, nil
}

// AddEdges adds every valid edge named in text. A candidate is valid when it
// has exactly two parts naming distinct existing nodes that are not already
// connected. Invalid candidates are skipped; when none is valid the call fails
// with domain.ErrInvalidEdge and nothing changes.
func (s *Store) AddEdges(text string) ([]domain.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]domain.Edge, 0)
	for _, tok := range parser.ParseEdgeList(text) {
		edge, ok := tok.Edge()
		if !ok {
			s.logger.Debug("malformed edge skipped", zap.String("token", tok.Raw))
			continue
		}
		if s.addEdgeLocked(edge) {
			added = append(added, edge)
		}
	}

	if len(added) == 0 {
		return nil, fmt.Errorf("add edges %q: %w", text, domain.ErrInvalidEdge)
	}

	s.touchLocked()
	s.logger.Debug("edges added", zap.Int("count", len(added)))
	return added, nil
}

// RemoveEdges removes every existing edge named in text, in either orientation.
// It fails with domain.ErrEdgeNotFound when none of them exists.
func (s *Store) RemoveEdges(text string) ([]domain.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[domain.EdgeID]struct{})
	for _, tok := range parser.ParseEdgeList(text) {
		edge, ok := tok.Edge()
		if !ok {
			continue
		}
		if _, exists := s.edgeIndex[edge.Key()]; exists {
			doomed[edge.Key()] = struct{}{}
		}
	}

	if len(doomed) == 0 {
		return nil, fmt.Errorf("remove edges %q: %w", text, domain.ErrEdgeNotFound)
	}

	removed := s.filterEdgesLocked(func(e domain.Edge) bool {
		_, gone := doomed[e.Key()]
		return gone
	})

	s.touchLocked()
	s.logger.Debug("edges removed", zap.Int("count", len(removed)))
	return removed, nil
}

// AddEdgeDirect connects a and b unless they are the same node, either is
// missing, or they are already connected. It returns the stored edge and
// whether it was added.
func (s *Store) AddEdgeDirect(a, b string) (domain.Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge := domain.NewEdge(domain.NormalizeID(a), domain.NormalizeID(b))
	if !s.addEdgeLocked(edge) {
		return domain.Edge{}, false
	}
	s.touchLocked()
	s.logger.Debug("edge connected", zap.Stringer("edge", edge))
	return edge, true
}

// SetColoring replaces the coloring. Entries for unknown nodes and negative
// color indices are dropped.
func (s *Store) SetColoring(coloring domain.Coloring) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setColoringLocked(coloring)
}

// SetColoringAt replaces the coloring only if the store is still at version.
// It reports whether the coloring was applied.
func (s *Store) SetColoringAt(version uint64, coloring domain.Coloring) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != version {
		return false
	}
	s.setColoringLocked(coloring)
	return true
}

// Coloring returns a copy of the current coloring
func (s *Store) Coloring() domain.Coloring {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coloring.Clone()
}

// SetThreshold sets the parameter forwarded to the coloring service
func (s *Store) SetThreshold(threshold float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.threshold == threshold {
		return
	}
	s.threshold = threshold
	s.version++
}

// Threshold returns the parameter forwarded to the coloring service
func (s *Store) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// Clear resets nodes, edges, coloring and threshold
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = nil
	s.nodeSet = make(map[string]struct{})
	s.edges = nil
	s.edgeIndex = make(map[domain.EdgeID]struct{})
	s.threshold = 0
	s.touchLocked()
	s.logger.Debug("graph cleared")
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() domain.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Graph{
		Nodes:     append([]string{}, s.nodes...),
		Edges:     append([]domain.Edge{}, s.edges...),
		Coloring:  s.coloring.Clone(),
		Threshold: s.threshold,
		Version:   s.version,
	}
}

// Nodes returns the nodes in insertion order
func (s *Store) Nodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.nodes...)
}

// Edges returns the edges in insertion order
func (s *Store) Edges() []domain.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Edge{}, s.edges...)
}

// Version returns the store revision, bumped by every structural change
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// HasNode reports whether id exists
func (s *Store) HasNode(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodeSet[domain.NormalizeID(id)]
	return ok
}

// HasEdge reports whether a and b are connected, in either orientation
func (s *Store) HasEdge(a, b string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.edgeIndex[domain.EdgeKey(domain.NormalizeID(a), domain.NormalizeID(b))]
	return ok
}

func (s *Store) addNodesLocked(ids []string) []string {
	added := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, exists := s.nodeSet[id]; exists {
			continue
		}
		s.nodeSet[id] = struct{}{}
		s.nodes = append(s.nodes, id)
		added = append(added, id)
	}
	return added
}

// addEdgeLocked inserts edge if it is valid against the current state
func (s *Store) addEdgeLocked(edge domain.Edge) bool {
	if edge.A == "" || edge.B == "" || edge.IsLoop() {
		return false
	}
	if _, ok := s.nodeSet[edge.A]; !ok {
		return false
	}
	if _, ok := s.nodeSet[edge.B]; !ok {
		return false
	}
	key := edge.Key()
	if _, exists := s.edgeIndex[key]; exists {
		return false
	}
	s.edgeIndex[key] = struct{}{}
	s.edges = append(s.edges, edge)
	return true
}

// filterEdgesLocked drops every edge matching drop and returns the dropped ones
func (s *Store) filterEdgesLocked(drop func(domain.Edge) bool) []domain.Edge {
	kept := make([]domain.Edge, 0, len(s.edges))
	dropped := make([]domain.Edge, 0)
	for _, e := range s.edges {
		if drop(e) {
			delete(s.edgeIndex, e.Key())
			dropped = append(dropped, e)
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	return dropped
}

func (s *Store) setColoringLocked(coloring domain.Coloring) {
	next := make(domain.Coloring, len(coloring))
	for node, idx := range coloring {
		id := domain.NormalizeID(node)
		if _, ok := s.nodeSet[id]; !ok || idx < 0 {
			s.logger.Debug("coloring entry dropped", zap.String("node", node), zap.Int("color", idx))
			continue
		}
		next[id] = idx
	}
	s.coloring = next
}

// touchLocked records a structural change: the coloring no longer applies
func (s *Store) touchLocked() {
	s.version++
	s.coloring = domain.Coloring{}
}
