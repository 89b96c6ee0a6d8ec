package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromagraph/internal/domain"
	"chromagraph/internal/layout"
	"chromagraph/internal/store"
)

func setup(t *testing.T, nodes string) (*store.Store, *DragConnect) {
	t.Helper()
	s := store.New()
	s.AddNodes(nodes)
	locator := LocatorFunc(func() []layout.Placement {
		return layout.Place(s.Nodes(), layout.DefaultRadius)
	})
	return s, NewDragConnect(storeEdges{s}, locator)
}

// storeEdges adapts a store to EdgeAdder
type storeEdges struct {
	*store.Store
}

func (s storeEdges) AddEdgeDirect(a, b string) bool {
	_, ok := s.Store.AddEdgeDirect(a, b)
	return ok
}

func positionOf(t *testing.T, s *store.Store, node string) domain.Position {
	t.Helper()
	pos, ok := layout.Lookup(layout.Place(s.Nodes(), layout.DefaultRadius), node)
	require.True(t, ok)
	return pos
}

func TestDragReleaseOnNode(t *testing.T) {
	s, d := setup(t, "a,b,c")

	d.OnPointerDown("a")
	assert.Equal(t, Dragging, d.State())
	assert.Equal(t, "a", d.Start())

	out := d.OnPointerUp("b")
	assert.Equal(t, Outcome{Start: "a", End: "b", Added: true}, out)
	assert.Equal(t, Idle, d.State())
	assert.True(t, s.HasEdge("a", "b"))
}

func TestDragSnapsToNearbyNode(t *testing.T) {
	s, d := setup(t, "a,b,c")
	c := positionOf(t, s, "c")

	d.OnPointerDown("a")
	d.OnPointerMove(domain.NewPosition(c.X+12, c.Y-12))

	end, ok := d.PotentialEnd()
	require.True(t, ok)
	assert.Equal(t, "c", end)

	preview, ok := d.Preview()
	require.True(t, ok)
	assert.True(t, preview.Snapped)
	assert.Equal(t, c, preview.To)

	out := d.OnPointerUp("")
	assert.True(t, out.Added)
	assert.True(t, s.HasEdge("a", "c"))
}

func TestDragReleaseOnEmptyCanvas(t *testing.T) {
	s, d := setup(t, "a,b,c")

	d.OnPointerDown("a")
	d.OnPointerMove(layout.Center)

	_, ok := d.PotentialEnd()
	assert.False(t, ok)

	preview, ok := d.Preview()
	require.True(t, ok)
	assert.False(t, preview.Snapped)
	assert.Equal(t, layout.Center, preview.To)

	out := d.OnPointerUp("")
	assert.False(t, out.Added)
	assert.Empty(t, out.End)
	assert.Equal(t, Idle, d.State())
	assert.Empty(t, s.Edges())
}

func TestDragReleaseOnStartNode(t *testing.T) {
	s, d := setup(t, "a,b")

	d.OnPointerDown("a")
	out := d.OnPointerUp("a")

	assert.False(t, out.Added)
	assert.Equal(t, Idle, d.State())
	assert.Empty(t, s.Edges())
}

func TestDragSnapMovesAway(t *testing.T) {
	s, d := setup(t, "a,b")
	b := positionOf(t, s, "b")

	d.OnPointerDown("a")
	d.OnPointerMove(b)
	d.OnPointerMove(layout.Center)

	out := d.OnPointerUp("")
	assert.False(t, out.Added)
	assert.Empty(t, s.Edges())
}

func TestDragExistingEdgeIsNoop(t *testing.T) {
	s, d := setup(t, "a,b")
	_, ok := s.AddEdgeDirect("b", "a")
	require.True(t, ok)

	d.OnPointerDown("a")
	out := d.OnPointerUp("b")

	assert.Equal(t, "b", out.End)
	assert.False(t, out.Added)
	assert.Len(t, s.Edges(), 1)
}

func TestPointerLeaveCancels(t *testing.T) {
	s, d := setup(t, "a,b")
	b := positionOf(t, s, "b")

	d.OnPointerDown("a")
	d.OnPointerMove(b)
	d.OnPointerLeave()

	assert.Equal(t, Idle, d.State())
	_, ok := d.Preview()
	assert.False(t, ok)

	out := d.OnPointerUp("b")
	assert.Equal(t, Outcome{}, out, "release after leave does nothing")
	assert.Empty(t, s.Edges())
}

func TestIdleIgnoresMoveAndUp(t *testing.T) {
	s, d := setup(t, "a,b")

	d.OnPointerMove(layout.Center)
	assert.Equal(t, domain.Position{}, d.Cursor())

	assert.Equal(t, Outcome{}, d.OnPointerUp("b"))
	assert.Empty(t, s.Edges())
}

func TestPointerDownOnUnknownNode(t *testing.T) {
	_, d := setup(t, "a")
	d.OnPointerDown("ghost")
	assert.Equal(t, Idle, d.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
}

func TestRegistry(t *testing.T) {
	newRegistry := func(t *testing.T) *Registry {
		t.Helper()
		s := store.New()
		s.AddNodes("a,b")
		locator := LocatorFunc(func() []layout.Placement {
			return layout.Place(s.Nodes(), layout.DefaultRadius)
		})
		return NewRegistry(storeEdges{s}, locator)
	}

	t.Run("sessions are tracked once a drag starts", func(t *testing.T) {
		r := newRegistry(t)

		first, ok := r.Begin("tab-1", "a")
		require.True(t, ok)
		assert.Equal(t, Dragging, first.State())

		again, ok := r.Lookup("tab-1")
		require.True(t, ok)
		assert.Same(t, first, again)

		second, ok := r.Begin("", "b")
		require.True(t, ok)
		assert.NotSame(t, first, second)
		fromDefault, ok := r.Lookup(DefaultSession)
		require.True(t, ok)
		assert.Same(t, second, fromDefault)
		assert.Equal(t, 2, r.Len())
	})

	t.Run("press on unknown node leaves no session", func(t *testing.T) {
		r := newRegistry(t)

		d, ok := r.Begin("tab-1", "zz")
		assert.False(t, ok)
		assert.Equal(t, Idle, d.State())
		assert.Equal(t, 0, r.Len())
	})

	t.Run("reset and remove", func(t *testing.T) {
		r := newRegistry(t)
		d, _ := r.Begin("tab-1", "a")

		r.Reset()
		assert.Equal(t, Idle, d.State())

		r.Remove("tab-1")
		_, ok := r.Lookup("tab-1")
		assert.False(t, ok)
	})

	t.Run("prune drops idle sessions", func(t *testing.T) {
		r := newRegistry(t)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		r.now = func() time.Time { return now }

		stale, _ := r.Begin("closed-tab", "a")
		now = now.Add(10 * time.Minute)
		r.Begin("open-tab", "b")

		assert.Equal(t, 1, r.Prune(5*time.Minute))
		assert.Equal(t, Idle, stale.State())
		_, ok := r.Lookup("closed-tab")
		assert.False(t, ok)
		_, ok = r.Lookup("open-tab")
		assert.True(t, ok)
	})
}
