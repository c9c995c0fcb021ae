// Package events publishes domain events after successful mutations.
// Publishing is best effort: failures are logged and never returned to the
// request that caused them.
package events

import (
	"context"
	"stayspot/pkg/kafka"
	"stayspot/pkg/logger"
	"sync"
	"time"
)

const (
	SpotCreated        = "spot.created"
	SpotUpdated        = "spot.updated"
	SpotDeleted        = "spot.deleted"
	SpotImageCreated   = "spot_image.created"
	SpotImageDeleted   = "spot_image.deleted"
	ReviewCreated      = "review.created"
	ReviewUpdated      = "review.updated"
	ReviewDeleted      = "review.deleted"
	ReviewImageCreated = "review_image.created"
	ReviewImageDeleted = "review_image.deleted"
	BookingCreated     = "booking.created"
	BookingUpdated     = "booking.updated"
	BookingDeleted     = "booking.deleted"
	UserCreated        = "user.created"

	schemaVersion = "1"
)

// Event is one domain change. Key decides partitioning, so events of one
// spot share it.
type Event struct {
	Type    string
	Key     string
	Payload any
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, timeout time.Duration, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		timeout:  timeout,
		log:      log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	log := p.log.FromContext(ctx)

	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event.Payload).
		WithEventType(event.Type).
		WithSource(p.source).
		WithSchemaVersion(schemaVersion).
		WithCorrelationID(logger.RequestID(ctx)).
		Build()
	if err != nil {
		log.Error("Failed to build event", "event_type", event.Type, "error", err)
		return
	}

	// The request context may already be close to its deadline; the event
	// gets its own budget.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(pubCtx, msg); err != nil {
		log.Error("Failed to publish event",
			"event_type", event.Type,
			"key", event.Key,
			"error", err,
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher only logs. Used when Kafka is disabled.
type NoopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher(log *logger.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) Publish(ctx context.Context, event Event) {
	p.log.FromContext(ctx).Debug("Event not published, Kafka disabled",
		"event_type", event.Type,
		"key", event.Key,
	)
}

func (p *NoopPublisher) Close() error {
	return nil
}

// MemoryPublisher records events in order. Meant for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(ctx context.Context, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *MemoryPublisher) Close() error {
	return nil
}

func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MemoryPublisher) Types() []string {
	var types []string
	for _, e := range p.Events() {
		types = append(types, e.Type)
	}
	return types
}
