// Package feed fans live donation events out to connected viewers.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

const defaultBuffer = 16

// Message is one encoded event ready to be written to a subscriber.
type Message struct {
	Event string
	Data  json.RawMessage
}

// Hub is an in-process broadcaster. A subscriber that falls behind by more
// than its buffer misses events instead of blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Message]struct{}
	buffer int
	closed bool
	log    zerolog.Logger
}

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[chan Message]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, h.buffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

// Publish implements ports.FeedPublisher for single-instance deployments.
func (h *Hub) Publish(_ context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal feed payload: %w", err)
	}
	h.Broadcast(event, data)
	return nil
}

// Broadcast delivers an encoded event to every current subscriber.
func (h *Hub) Broadcast(event string, data json.RawMessage) {
	msg := Message{Event: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			h.log.Debug().Str("event", event).Msg("feed subscriber is full, dropping event")
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber. Later subscriptions are closed immediately.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
