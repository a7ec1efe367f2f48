// internal/events/logger.go
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types emitted by the heat tracker.
const (
	TypeValidationTracked   = "validation_tracked"
	TypeAggregationComplete = "aggregation_complete"
	TypeDecayApplied        = "decay_applied"
	TypeCleanupPerformed    = "cleanup_performed"
	TypeHeatmapCleared      = "heatmap_cleared"
)

// Event is one tracker occurrence delivered to observers.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	PatternKey string                 `json:"pattern_key,omitempty"`
	PipelineID string                 `json:"pipeline_id,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// Handler processes a delivered event. Handlers run on the emitter's own
// goroutine; a slow handler delays delivery, never the emitter.
type Handler func(Event)

// Emitter is a buffered fire-and-forget event sink. Emission never blocks:
// when the buffer is full the event is dropped with a warning.
type Emitter struct {
	logger *zap.Logger
	buffer chan Event

	mu       sync.RWMutex
	handlers []Handler
	closed   bool
}

// NewEmitter creates an emitter and starts its delivery goroutine.
func NewEmitter(logger *zap.Logger, bufferSize int) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	e := &Emitter{
		logger: logger,
		buffer: make(chan Event, bufferSize),
	}
	go e.process()
	return e
}

// Subscribe registers a handler for every subsequent event.
func (e *Emitter) Subscribe(h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, h)
}

// Emit queues an event for delivery. Safe on a nil emitter and after Close.
func (e *Emitter) Emit(event Event) {
	if e == nil {
		return
	}
	event.ID = uuid.NewString()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}

	select {
	case e.buffer <- event:
	default:
		e.logger.Warn("event buffer full, dropping event", zap.String("type", event.Type))
	}
}

// Close stops delivery after draining queued events. Idempotent.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.buffer)
}

func (e *Emitter) process() {
	for event := range e.buffer {
		data, _ := json.Marshal(event)
		e.logger.Info("event",
			zap.String("type", event.Type),
			zap.String("data", string(data)),
		)

		e.mu.RLock()
		handlers := e.handlers
		e.mu.RUnlock()
		for _, h := range handlers {
			h(event)
		}
	}
}
