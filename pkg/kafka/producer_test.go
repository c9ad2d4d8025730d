package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("space-1").
		WithValue(map[string]string{"id": "r1"}).
		WithEventType("reservation.created").
		WithSource("reservations").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return msg
}

func TestProducerPublish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "reservations.events")

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(w.messages) != 1 {
		t.Fatalf("wrote %d messages, want 1", len(w.messages))
	}
	got := w.messages[0]
	if string(got.Key) != "space-1" {
		t.Errorf("key = %q", got.Key)
	}
	if string(got.Value) != `{"id":"r1"}` {
		t.Errorf("value = %s", got.Value)
	}

	headers := map[string]string{}
	for i, h := range got.Headers {
		headers[h.Key] = string(h.Value)
		if i > 0 && got.Headers[i-1].Key > h.Key {
			t.Errorf("headers not sorted: %q before %q", got.Headers[i-1].Key, h.Key)
		}
	}
	if headers[HeaderEventType] != "reservation.created" {
		t.Errorf("event type header = %q", headers[HeaderEventType])
	}
	if headers[HeaderEventID] == "" {
		t.Error("event id header missing")
	}
}

func TestProducerPublishRejectsInvalid(t *testing.T) {
	p := newProducer(&fakeWriter{}, "t")

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key error = %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("empty value error = %v", err)
	}
}

func TestProducerMiddlewareOrder(t *testing.T) {
	p := newProducer(&fakeWriter{}, "t")

	var order []string
	for _, name := range []string{"first", "second"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			order = append(order, name)
			if msg.Topic != "t" {
				t.Errorf("middleware saw topic %q", msg.Topic)
			}
			return next(ctx, msg)
		})
	}

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestProducerClose(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "t")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Error("writer not closed")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := p.Publish(context.Background(), buildMessage(t)); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("publish after close error = %v", err)
	}
}

func TestMessageBuilderRecordsEncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Build() error = %v, want ErrInvalidMessage", err)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"refused", errors.New("dial tcp: connection refused"), ErrorTypeTransient},
		{"empty key", ErrEmptyKey, ErrorTypePermanent},
		{"unknown text", errors.New("something odd"), ErrorTypePermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}
