// Package messaging abstracts the message broker behind a small
// publisher/consumer API with interchangeable drivers.
package messaging

import "context"

// Header carries message metadata such as the correlation ID.
type Header map[string]string

// OutgoingMessage is a message to publish.
type OutgoingMessage struct {
	Topic  string
	Key    string
	Data   []byte
	Header Header
}

// PublishResult reports the broker acknowledgement for one message.
type PublishResult struct {
	MessageID string
}

// Message is a consumed message. Ack and Nack are idempotent; drivers with
// auto-ack turn both into no-ops.
type Message interface {
	Topic() string
	Data() []byte
	Header() Header
	Ack() error
	Nack() error
}

// HandlerFunc processes one consumed message. Returning an error nacks the
// message unless auto-ack is enabled.
type HandlerFunc func(ctx context.Context, msg Message) error

// Publisher publishes messages.
type Publisher interface {
	Publish(ctx context.Context, msg OutgoingMessage) (*PublishResult, error)
}

// Consumer subscribes handlers to topics.
type Consumer interface {
	Subscribe(ctx context.Context, handler HandlerFunc, opts ...SubscribeOption) error
}

// Messaging combines both roles plus shutdown.
type Messaging interface {
	Publisher
	Consumer
	Close() error
}
