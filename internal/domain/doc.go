// Package domain defines the core value types of the chromagraph graph editor.
//
// # Core Types
//
// A node is a normalized string identifier (trimmed and lower-cased). Nodes keep
// the order in which they were first added because that order drives the
// circular layout.
//
// Edge is an unordered pair of distinct node identifiers. Two edges are the same
// edge when they connect the same pair, whatever the orientation; Key returns
// the orientation-free identity used for deduplication.
//
// Coloring maps a node to a non-negative color class. It is produced by the
// external coloring service and replaced wholesale, never edited in place.
//
// Graph is an immutable snapshot of the editor state handed to renderers,
// encoders and the coloring client.
//
// # Errors
//
// The error kinds surfaced to users are sentinel values (ErrInvalidEdge,
// ErrNodeNotFound, ErrEdgeNotFound, ErrNetworkFailure). Callers wrap them with
// fmt.Errorf and match with errors.Is; UserMessage turns them into the inline
// text shown next to the form that triggered them.
package domain
