// Package handler implements the HTTP surface of the graph editor.
//
// # Handlers
//
// GraphHandler serves the editor page, the SVG canvas and the JSON API for
// node and edge edits, the coloring threshold, coloring generation and
// import/export.
//
// DragHandler receives pointer events for the drag-to-connect interaction.
// Each browser page carries its own session id so concurrent users do not
// share a drag.
//
// # Errors
//
// Errors are returned as JSON {error, details}. The error field carries the
// message shown inline in the page. Status codes:
//   - 400 invalid edge text or malformed request
//   - 404 remove request naming nothing that exists
//   - 409 coloring already in progress, or graph changed during coloring
//   - 502 coloring service failure
//
// # Middleware
//
// Chain composes Recover, RequestID, Logger and CORS around the mux.
package handler
