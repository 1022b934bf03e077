package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type funcHandler struct {
	id      string
	handler EventHandler
}

// EventBus is a synchronous event bus implementation. Subscribers are notified in the
// order they subscribed, then function handlers in the order they were added.
type EventBus struct {
	subscribers  []Subscriber
	funcHandlers map[string][]funcHandler
	nextFuncID   int
	mu           sync.RWMutex
	logger       zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates an event bus that logs through logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]funcHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus. A subscriber with the same ID is replaced.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	kept := eb.subscribers[:0]
	for _, s := range eb.subscribers {
		if s.ID() != subscriberID {
			kept = append(kept, s)
		}
	}
	eb.subscribers = kept
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for specific event types
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextFuncID++
	handlerID := eventType + "_func_" + strconv.Itoa(eb.nextFuncID)
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], funcHandler{id: handlerID, handler: handler})

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// UnsubscribeFunc removes a function handler by ID
func (eb *EventBus) UnsubscribeFunc(handlerID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, handlers := range eb.funcHandlers {
		for i, h := range handlers {
			if h.id == handlerID {
				eb.funcHandlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all interested subscribers synchronously
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subscribers := append([]Subscriber(nil), eb.subscribers...)
	handlers := append([]funcHandler(nil), eb.funcHandlers[event.Type()]...)
	eb.mu.RUnlock()

	eventType := event.Type()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Msg("Publishing event")

	for _, subscriber := range subscribers {
		if subscriber.InterestedIn(eventType) {
			eb.deliver(subscriber.ID(), eventType, func() { subscriber.HandleEvent(event) })
		}
	}

	for _, h := range handlers {
		eb.deliver(h.id, eventType, func() { h.handler(event) })
	}
}

// deliver runs fn, catching panics so one handler cannot break the others
func (eb *EventBus) deliver(handlerID, eventType string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("handler_id", handlerID).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Event handler panicked while handling event")
		}
	}()
	fn()
}

// GetSubscriberCount returns the number of subscribers for debugging
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
