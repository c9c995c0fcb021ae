package events

import (
	"context"
	"errors"
	"stayspot/pkg/kafka"
	"stayspot/pkg/logger"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &recordingWriter{}
	producer := kafka.NewProducerWithWriters(writer, nil, "stayspot.events", "")
	pub := NewKafkaPublisher(producer, "api", time.Second, logger.Discard())

	ctx := logger.WithRequestID(context.Background(), "req-42")
	pub.Publish(ctx, Event{Type: BookingCreated, Key: "spot-1", Payload: map[string]string{"id": "b1"}})

	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	assert.Equal(t, "spot-1", string(msg.Key))
	assert.JSONEq(t, `{"id":"b1"}`, string(msg.Value))
	assert.Equal(t, BookingCreated, headerValue(msg, kafka.HeaderEventType))
	assert.Equal(t, "req-42", headerValue(msg, kafka.HeaderCorrelationID))
	assert.Equal(t, "api", headerValue(msg, kafka.HeaderSource))
}

func TestKafkaPublisher_FailureIsSwallowed(t *testing.T) {
	producer := kafka.NewProducerWithWriters(&recordingWriter{err: errors.New("down")}, nil, "t", "")
	pub := NewKafkaPublisher(producer, "api", time.Second, logger.Discard())

	assert.NotPanics(t, func() {
		pub.Publish(context.Background(), Event{Type: SpotDeleted, Key: "spot-1", Payload: "x"})
	})
}

func TestMemoryPublisher(t *testing.T) {
	pub := NewMemoryPublisher()
	pub.Publish(context.Background(), Event{Type: SpotCreated, Key: "a"})
	pub.Publish(context.Background(), Event{Type: SpotImageCreated, Key: "a"})

	assert.Equal(t, []string{SpotCreated, SpotImageCreated}, pub.Types())
}
