package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"cloud.google.com/go/pubsub/v2"
)

// PubSubConfig configures the google-pubsub driver.
type PubSubConfig struct {
	ProjectID string
}

// PubSub implements Messaging over Google Cloud Pub/Sub.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
	cancel     []context.CancelFunc
	wg         sync.WaitGroup
}

// NewPubSub creates the client with application default credentials.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("messaging: pubsub requires a project id")
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	return &PubSub{
		client:     client,
		publishers: make(map[string]*pubsub.Publisher),
	}, nil
}

// Publish sends the message, blocking until the server acknowledges it.
func (p *PubSub) Publish(ctx context.Context, msg OutgoingMessage) (*PublishResult, error) {
	p.mu.Lock()
	pub, ok := p.publishers[msg.Topic]
	if !ok {
		pub = p.client.Publisher(msg.Topic)
		p.publishers[msg.Topic] = pub
	}
	p.mu.Unlock()

	res := pub.Publish(ctx, &pubsub.Message{
		Data:        msg.Data,
		Attributes:  msg.Header,
		OrderingKey: msg.Key,
	})

	id, err := res.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &PublishResult{MessageID: id}, nil
}

// Subscribe starts a Receive loop on the configured subscription.
func (p *PubSub) Subscribe(ctx context.Context, handler HandlerFunc, opts ...SubscribeOption) error {
	so := newSubscribeOptions(opts)
	if so.subscription == "" {
		return errors.New("messaging: pubsub subscription id is required")
	}

	sub := p.client.Subscriber(so.subscription)
	sub.ReceiveSettings.NumGoroutines = so.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = so.maxInFlight

	runCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = append(p.cancel, cancel)
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		err := sub.Receive(runCtx, func(ctx context.Context, m *pubsub.Message) {
			msg := &pubsubMessage{msg: m, topic: so.channel, autoAck: so.autoAck}
			if so.autoAck {
				m.Ack()
			}

			if err := callHandlerWithRecover(ctx, handler, msg); err != nil {
				_ = msg.Nack()

				return
			}
			_ = msg.Ack()
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.ErrorContext(ctx, "pubsub receive stopped", "error", err, "subscription", so.subscription)
		}
	}()

	return nil
}

// Close stops receive loops and the client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	for _, cancel := range p.cancel {
		cancel()
	}
	p.mu.Unlock()

	p.wg.Wait()

	return p.client.Close()
}

type pubsubMessage struct {
	msg     *pubsub.Message
	topic   string
	autoAck bool

	once sync.Once
}

func (m *pubsubMessage) Topic() string  { return m.topic }
func (m *pubsubMessage) Data() []byte   { return m.msg.Data }
func (m *pubsubMessage) Header() Header { return m.msg.Attributes }

func (m *pubsubMessage) Ack() error {
	if !m.autoAck {
		m.once.Do(m.msg.Ack)
	}

	return nil
}

func (m *pubsubMessage) Nack() error {
	if !m.autoAck {
		m.once.Do(m.msg.Nack)
	}

	return nil
}
