package mq

import "context"

// Message is a payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to nack and requeue.
type Handler func(ctx context.Context, msg Message) error

// Backend is the broker surface the event publisher and match consumer use.
type Backend interface {
	Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, queue string, handler Handler) error
	Close() error
}
