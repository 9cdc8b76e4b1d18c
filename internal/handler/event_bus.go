// internal/handler/event_bus.go
package handler

import (
	"sync"

	"go.uber.org/zap"

	"qo100-console/internal/model"
)

// EventBus fans console events out from the services to whoever wants
// them, the WebSocket handler first of all. Publish never blocks the
// serial path: when the bus backs up, events drop.
type EventBus struct {
	subscribers map[model.EventType][]chan *model.ConsoleEvent
	all         []chan *model.ConsoleEvent
	events      chan *model.ConsoleEvent
	mutex       sync.RWMutex
	logger      *zap.Logger
	closeOnce   sync.Once
}

// NewEventBus creates a new event bus
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[model.EventType][]chan *model.ConsoleEvent),
		events:      make(chan *model.ConsoleEvent, 1000),
		logger:      logger,
	}
}

// Start runs the distribution loop until Stop closes the bus
func (eb *EventBus) Start() {
	for event := range eb.events {
		eb.distributeEvent(event)
	}
}

// Stop closes the bus. Pending events still distribute before Start
// returns.
func (eb *EventBus) Stop() {
	eb.closeOnce.Do(func() {
		close(eb.events)
	})
}

// Publish queues an event for distribution. Implements the publisher
// the services expect.
func (eb *EventBus) Publish(event *model.ConsoleEvent) {
	select {
	case eb.events <- event:
	default:
		if eb.logger != nil {
			eb.logger.Warn("Event bus full, dropping event",
				zap.String("event_type", string(event.EventType)),
			)
		}
	}
}

// Subscribe subscribes to events of a specific type
func (eb *EventBus) Subscribe(eventType model.EventType) <-chan *model.ConsoleEvent {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	subscriber := make(chan *model.ConsoleEvent, 100)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscriber)
	return subscriber
}

// SubscribeAll subscribes to every event type
func (eb *EventBus) SubscribeAll() <-chan *model.ConsoleEvent {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	subscriber := make(chan *model.ConsoleEvent, 100)
	eb.all = append(eb.all, subscriber)
	return subscriber
}

// distributeEvent distributes an event to subscribers
func (eb *EventBus) distributeEvent(event *model.ConsoleEvent) {
	eb.mutex.RLock()
	subscribers := eb.subscribers[event.EventType]
	all := eb.all
	eb.mutex.RUnlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Subscriber is slow, skip
		}
	}
	for _, subscriber := range all {
		select {
		case subscriber <- event:
		default:
		}
	}
}
