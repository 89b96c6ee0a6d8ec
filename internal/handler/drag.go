package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chromagraph/internal/domain"
	"chromagraph/internal/interaction"
)

// PointerRequest names the node under the pointer, empty over blank canvas
type PointerRequest struct {
	Node string `json:"node" validate:"max=256"`
}

// MoveRequest is a pointer position in canvas coordinates
type MoveRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// DragResponse reports the interaction state after an event
type DragResponse struct {
	State        string               `json:"state"`
	Start        string               `json:"start,omitempty"`
	PotentialEnd string               `json:"potential_end,omitempty"`
	Preview      *interaction.Preview `json:"preview,omitempty"`
}

// DragHandler feeds pointer events into per-session drag interactions
type DragHandler struct {
	drags  *interaction.Registry
	logger *zap.Logger
}

// NewDragHandler creates a drag handler
func NewDragHandler(drags *interaction.Registry, logger *zap.Logger) *DragHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DragHandler{drags: drags, logger: logger}
}

// Register adds the drag routes to mux
func (h *DragHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/drag/{session}/down", h.PointerDown)
	mux.HandleFunc("POST /api/drag/{session}/move", h.PointerMove)
	mux.HandleFunc("POST /api/drag/{session}/up", h.PointerUp)
	mux.HandleFunc("POST /api/drag/{session}/leave", h.PointerLeave)
}

// PointerDown starts a drag from the pressed node
func (h *DragHandler) PointerDown(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
		return
	}

	d, _ := h.drags.Begin(r.PathValue("session"), req.Node)
	writeJSON(w, dragState(d), http.StatusOK)
}

// PointerMove tracks the cursor during a drag
func (h *DragHandler) PointerMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
		return
	}

	d, ok := h.drags.Lookup(r.PathValue("session"))
	if !ok {
		writeJSON(w, DragResponse{State: interaction.Idle.String()}, http.StatusOK)
		return
	}
	d.OnPointerMove(domain.NewPosition(*req.X, *req.Y))
	writeJSON(w, dragState(d), http.StatusOK)
}

// PointerUp ends the drag, connecting the start to the end node if possible
func (h *DragHandler) PointerUp(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if err := decodeRequest(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, "Invalid request", err.Error(), http.StatusBadRequest)
		return
	}

	session := r.PathValue("session")
	d, ok := h.drags.Lookup(session)
	if !ok {
		writeJSON(w, interaction.Outcome{}, http.StatusOK)
		return
	}
	outcome := d.OnPointerUp(req.Node)
	h.drags.Remove(session)

	if outcome.Added {
		h.logger.Debug("edge added by drag",
			zap.String("session", session),
			zap.String("from", outcome.Start),
			zap.String("to", outcome.End))
	}
	writeJSON(w, outcome, http.StatusOK)
}

// PointerLeave abandons the drag
func (h *DragHandler) PointerLeave(w http.ResponseWriter, r *http.Request) {
	session := r.PathValue("session")
	if d, ok := h.drags.Lookup(session); ok {
		d.OnPointerLeave()
		h.drags.Remove(session)
	}
	writeJSON(w, DragResponse{State: interaction.Idle.String()}, http.StatusOK)
}

func dragState(d *interaction.DragConnect) DragResponse {
	resp := DragResponse{State: d.State().String(), Start: d.Start()}
	if end, ok := d.PotentialEnd(); ok {
		resp.PotentialEnd = end
	}
	if p, ok := d.Preview(); ok {
		resp.Preview = &p
	}
	return resp
}
