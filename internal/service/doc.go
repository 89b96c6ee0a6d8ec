// Package service coordinates the graph store with everything around it.
//
// GraphService wraps every edit operation of the store, publishes an Event on
// the EventBus for each successful change and keeps the metrics current. It
// also satisfies the interfaces the drag interaction needs (an edge adder and
// a locator of rendered node positions).
//
// ColoringService submits the current graph to the external coloring service.
// Only one submission runs at a time, and a response is applied only if the
// graph has not changed since it was sent.
package service
