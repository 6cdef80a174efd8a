// Package events carries domain notifications (new users, catalog changes,
// cart adds, order status changes) to whoever is listening.
package events

import (
	"context"
	"sync"
	"time"
)

const (
	TopicUserCreated        = "user.created"
	TopicProductCreated     = "product.created"
	TopicProductDeleted     = "product.deleted"
	TopicCartItemAdded      = "cart.item_added"
	TopicOrderStatusUpdated = "order.status_updated"
)

// Event is the envelope written to every sink.
type Event struct {
	Topic string    `json:"topic"`
	Data  any       `json:"data"`
	At    time.Time `json:"at"`
}

// Publisher delivers an event. Failures are the publisher's to log;
// callers never fail a request because an event could not be sent.
type Publisher interface {
	Publish(ctx context.Context, topic string, data any)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) {}

// Fanout publishes to each sink in order.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, topic string, data any) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, topic, data)
		}
	}
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, topic string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Topic: topic, Data: data, At: time.Now()})
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Topics lists the topics seen so far, in publish order.
func (r *Recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Topic)
	}
	return out
}
