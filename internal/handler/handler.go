package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chromagraph/internal/codec"
	"chromagraph/internal/domain"
	"chromagraph/internal/interaction"
	"chromagraph/internal/layout"
	"chromagraph/internal/render"
	"chromagraph/internal/service"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TextRequest carries comma-separated node or edge text as typed by the user
type TextRequest struct {
	Text string `json:"text" validate:"max=10000"`
}

// ThresholdRequest sets the coloring threshold
type ThresholdRequest struct {
	Threshold *float64 `json:"threshold" validate:"required"`
}

// RandomEdgesRequest asks for random edges between unconnected pairs
type RandomEdgesRequest struct {
	Probability float64 `json:"probability" validate:"gte=0,lte=1"`
	Seed        int64   `json:"seed"`
}

// HealthResponse reports liveness and the state of the coloring collaborator
type HealthResponse struct {
	Status   string `json:"status"`
	Breaker  string `json:"breaker,omitempty"`
	InFlight bool   `json:"in_flight"`
}

// NodesResponse lists nodes touched by an edit
type NodesResponse struct {
	Nodes   []string `json:"nodes"`
	Version uint64   `json:"version"`
}

// EdgesResponse lists edges touched by an edit
type EdgesResponse struct {
	Edges   []domain.Edge `json:"edges"`
	Version uint64        `json:"version"`
}

// GraphResponse is the graph snapshot with its rendered layout
type GraphResponse struct {
	domain.Graph
	Placements []layout.Placement `json:"placements"`
	// Colors maps each colored node to its hex color
	Colors map[string]string `json:"colors"`
}

// ColoringResponse is returned by a successful generate
type ColoringResponse struct {
	Coloring domain.Coloring `json:"coloring"`
	Colors   int             `json:"colors"`
	Version  uint64          `json:"version"`
}

// GraphHandler handles page, canvas and graph API requests
type GraphHandler struct {
	svc      *service.GraphService
	coloring *service.ColoringService
	drags    *interaction.Registry
	renderer *render.Renderer
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(svc *service.GraphService, coloring *service.ColoringService, drags *interaction.Registry, renderer *render.Renderer, logger *zap.Logger) *GraphHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphHandler{
		svc:      svc,
		coloring: coloring,
		drags:    drags,
		renderer: renderer,
		logger:   logger,
	}
}

// Register adds the graph routes to mux
func (h *GraphHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /graph.svg", h.GraphSVG)
	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("GET /api/graph", h.GetGraph)
	mux.HandleFunc("DELETE /api/graph", h.ClearGraph)

	mux.HandleFunc("POST /api/nodes", h.AddNodes)
	mux.HandleFunc("DELETE /api/nodes", h.RemoveNodes)

	mux.HandleFunc("POST /api/edges", h.AddEdges)
	mux.HandleFunc("DELETE /api/edges", h.RemoveEdges)
	mux.HandleFunc("POST /api/edges/random", h.RandomEdges)

	mux.HandleFunc("PUT /api/threshold", h.SetThreshold)
	mux.HandleFunc("POST /api/generate", h.Generate)

	mux.HandleFunc("POST /api/import/{format}", h.Import)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
}

// Index serves the editor page with a fresh drag session
func (h *GraphHandler) Index(w http.ResponseWriter, r *http.Request) {
	graph := h.svc.Graph()
	data := render.PageData{
		Session:   uuid.NewString(),
		Threshold: graph.Threshold,
		InFlight:  h.coloring.InFlight(),
		Canvas: render.BuildCanvas(graph, render.Options{
			Colored: true,
			Radius:  h.svc.Radius(),
		}),
	}

	w.Header().Set("Content-Type", render.HTMLContentType)
	if err := h.renderer.Page(w, data); err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// GraphSVG renders the canvas. Query flags: colored, conflicts, session.
func (h *GraphHandler) GraphSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := render.Options{
		Colored:   queryBool(q.Get("colored")),
		Conflicts: queryBool(q.Get("conflicts")),
		Radius:    h.svc.Radius(),
	}
	if d, ok := h.drags.Lookup(q.Get("session")); ok {
		if preview, ok := d.Preview(); ok {
			opts.Drag = &render.DragView{Start: d.Start(), Preview: preview}
		}
	}

	canvas := render.BuildCanvas(h.svc.Graph(), opts)
	w.Header().Set("Content-Type", render.SVGContentType)
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.SVG(w, canvas); err != nil {
		h.logger.Error("failed to render canvas", zap.Error(err))
		http.Error(w, "Failed to render canvas", http.StatusInternalServerError)
	}
}

// Health reports liveness
func (h *GraphHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:   "ok",
		Breaker:  h.coloring.BreakerState(),
		InFlight: h.coloring.InFlight(),
	}, http.StatusOK)
}

// GetGraph returns the complete graph with node positions and colors
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	graph := h.svc.Graph()
	total := layout.TotalColors(graph.Coloring)
	colors := make(map[string]string, len(graph.Coloring))
	for node, idx := range graph.Coloring {
		colors[node] = layout.ColorOf(idx, total).Hex()
	}

	writeJSON(w, GraphResponse{
		Graph:      graph,
		Placements: layout.Place(graph.Nodes, h.svc.Radius()),
		Colors:     colors,
	}, http.StatusOK)
}

// ClearGraph removes everything and abandons any drag in progress
func (h *GraphHandler) ClearGraph(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	h.drags.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// AddNodes adds the nodes named in the request text
func (h *GraphHandler) AddNodes(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}

	added := h.svc.AddNodes(req.Text)
	writeJSON(w, NodesResponse{Nodes: added, Version: h.svc.Graph().Version}, http.StatusOK)
}

// RemoveNodes removes the nodes named in the request text
func (h *GraphHandler) RemoveNodes(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}

	removed, err := h.svc.RemoveNodes(req.Text)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, NodesResponse{Nodes: removed, Version: h.svc.Graph().Version}, http.StatusOK)
}

// AddEdges adds the edges named in the request text
func (h *GraphHandler) AddEdges(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}

	added, err := h.svc.AddEdges(req.Text)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, EdgesResponse{Edges: added, Version: h.svc.Graph().Version}, http.StatusOK)
}

// RemoveEdges removes the edges named in the request text
func (h *GraphHandler) RemoveEdges(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}

	removed, err := h.svc.RemoveEdges(req.Text)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, EdgesResponse{Edges: removed, Version: h.svc.Graph().Version}, http.StatusOK)
}

// RandomEdges connects unconnected pairs at random
func (h *GraphHandler) RandomEdges(w http.ResponseWriter, r *http.Request) {
	var req RandomEdgesRequest
	if !h.decode(w, r, &req) {
		return
	}

	added := h.svc.RandomEdges(req.Seed, req.Probability)
	writeJSON(w, EdgesResponse{Edges: added, Version: h.svc.Graph().Version}, http.StatusOK)
}

// SetThreshold sets the value forwarded with coloring requests
func (h *GraphHandler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	var req ThresholdRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.svc.SetThreshold(*req.Threshold)
	writeJSON(w, map[string]float64{"threshold": *req.Threshold}, http.StatusOK)
}

// Generate submits the graph to the coloring service
func (h *GraphHandler) Generate(w http.ResponseWriter, r *http.Request) {
	coloring, err := h.coloring.Generate(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, ColoringResponse{
		Coloring: coloring,
		Colors:   coloring.Classes(),
		Version:  h.svc.Graph().Version,
	}, http.StatusOK)
}

// Import merges a JSON or YAML document into the graph
func (h *GraphHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	result, err := h.svc.Import(format, http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, "Failed to import graph", err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// Export writes the graph structure as a downloadable document
func (h *GraphHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	c, err := codec.ForFormat(format)
	if err != nil {
		writeError(w, "Unsupported export format", err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", c.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=graph.%s", c.Format()))
	if err := h.svc.Export(c.Format(), w); err != nil {
		h.logger.Error("failed to export graph", zap.String("format", format), zap.Error(err))
		writeError(w, "Failed to export graph", err.Error(), http.StatusInternalServerError)
	}
}

// decode reads and validates a request body, writing a 400 on failure
func (h *GraphHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeRequest(r, dst); err != nil {
		writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeDomainError maps an error kind to its status and inline message
func (h *GraphHandler) writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := domain.UserMessage(err)
	if errors.Is(err, service.ErrColoringInFlight) || errors.Is(err, service.ErrStaleColoring) {
		message = err.Error()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeError(w, message, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidEdge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, domain.ErrEdgeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrColoringInFlight), errors.Is(err, service.ErrStaleColoring):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func queryBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}
