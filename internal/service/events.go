package service

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventNodesAdded      EventType = "nodes_added"
	EventNodesRemoved    EventType = "nodes_removed"
	EventEdgesAdded      EventType = "edges_added"
	EventEdgesRemoved    EventType = "edges_removed"
	EventThresholdSet    EventType = "threshold_set"
	EventGraphCleared    EventType = "graph_cleared"
	EventGraphImported   EventType = "graph_imported"
	EventColoringUpdated EventType = "coloring_updated"
)

// Event represents a change to the graph
type Event struct {
	Type    EventType   `json:"type"`
	Version uint64      `json:"version"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
