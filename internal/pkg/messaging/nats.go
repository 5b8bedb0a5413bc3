package messaging

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the nats driver.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS implements Messaging over core NATS subjects.
type NATS struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

// NewNATS connects to the server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}

	conn, err := nats.Connect(url, cfg.Options...)
	if err != nil {
		return nil, err
	}

	return &NATS{conn: conn}, nil
}

// Publish sends the message to its topic as a NATS subject.
func (n *NATS) Publish(ctx context.Context, msg OutgoingMessage) (*PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := nats.NewMsg(msg.Topic)
	m.Data = msg.Data
	for k, v := range msg.Header {
		m.Header.Set(k, v)
	}

	if err := n.conn.PublishMsg(m); err != nil {
		return nil, err
	}

	return &PublishResult{}, nil
}

// Subscribe registers handler on the configured channel. A queue group
// spreads messages across replicas.
func (n *NATS) Subscribe(ctx context.Context, handler HandlerFunc, opts ...SubscribeOption) error {
	so := newSubscribeOptions(opts)
	if so.channel == "" {
		return errors.New("messaging: nats subscription requires a channel")
	}

	sem := make(chan struct{}, so.concurrency)

	cb := func(m *nats.Msg) {
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()

			msg := &natsMessage{msg: m, autoAck: so.autoAck}
			if err := callHandlerWithRecover(ctx, handler, msg); err != nil {
				_ = msg.Nack()

				return
			}
			_ = msg.Ack()
		}()
	}

	var sub *nats.Subscription
	var err error
	if so.queueGroup != "" {
		sub, err = n.conn.QueueSubscribe(so.channel, so.queueGroup, cb)
	} else {
		sub, err = n.conn.Subscribe(so.channel, cb)
	}
	if err != nil {
		return err
	}

	if err := sub.SetPendingLimits(so.maxInFlight, -1); err != nil {
		return err
	}

	n.subs = append(n.subs, sub)

	return nil
}

// Close drains subscriptions and the connection.
func (n *NATS) Close() error {
	var firstErr error
	for _, sub := range n.subs {
		if err := sub.Unsubscribe(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := n.conn.Drain(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

type natsMessage struct {
	msg     *nats.Msg
	autoAck bool
}

func (m *natsMessage) Topic() string { return m.msg.Subject }
func (m *natsMessage) Data() []byte  { return m.msg.Data }

func (m *natsMessage) Header() Header {
	h := make(Header, len(m.msg.Header))
	for k := range m.msg.Header {
		h[k] = m.msg.Header.Get(k)
	}

	return h
}

// Ack is a no-op on core NATS; delivery is at-most-once.
func (m *natsMessage) Ack() error { return nil }

// Nack is a no-op on core NATS.
func (m *natsMessage) Nack() error { return nil }
