package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nsqio/go-nsq"
)

// NSQConfig configures the nsq driver.
type NSQConfig struct {
	ProducerAddr        string
	ConsumerNSQDAddrs   []string
	ConsumerLookupAddrs []string
	ProducerConfig      *nsq.Config
	ConsumerConfig      *nsq.Config
}

// nsqEnvelope wraps data and headers on the wire; nsq itself has no
// message headers.
type nsqEnvelope struct {
	Header Header `json:"header,omitempty"`
	Data   []byte `json:"data"`
}

// NSQ implements Messaging over nsqd.
type NSQ struct {
	cfg       NSQConfig
	producer  *nsq.Producer
	consumers []*nsq.Consumer
}

// NewNSQ connects the producer; consumers are created per subscription.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	pc := cfg.ProducerConfig
	if pc == nil {
		pc = nsq.NewConfig()
	}

	producer, err := nsq.NewProducer(cfg.ProducerAddr, pc)
	if err != nil {
		return nil, err
	}

	return &NSQ{cfg: cfg, producer: producer}, nil
}

// Publish sends the message wrapped in an envelope carrying the headers.
func (n *NSQ) Publish(ctx context.Context, msg OutgoingMessage) (*PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(nsqEnvelope{Header: msg.Header, Data: msg.Data})
	if err != nil {
		return nil, err
	}

	if err := n.producer.Publish(msg.Topic, raw); err != nil {
		return nil, err
	}

	return &PublishResult{}, nil
}

// Subscribe creates a consumer on channel/queueGroup. The nsq channel
// plays the role of a queue group.
func (n *NSQ) Subscribe(ctx context.Context, handler HandlerFunc, opts ...SubscribeOption) error {
	so := newSubscribeOptions(opts)
	if so.channel == "" || so.queueGroup == "" {
		return errors.New("messaging: nsq subscription requires a channel and queue group")
	}

	cc := n.cfg.ConsumerConfig
	if cc == nil {
		cc = nsq.NewConfig()
	}
	cc.MaxInFlight = so.maxInFlight

	consumer, err := nsq.NewConsumer(so.channel, so.queueGroup, cc)
	if err != nil {
		return err
	}

	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		var env nsqEnvelope
		if err := json.Unmarshal(m.Body, &env); err != nil {
			// not an envelope, deliver raw
			env = nsqEnvelope{Data: m.Body}
		}

		msg := &nsqMessage{msg: m, topic: so.channel, env: env, autoAck: so.autoAck}
		if so.autoAck {
			m.Finish()
		}

		if err := callHandlerWithRecover(ctx, handler, msg); err != nil {
			_ = msg.Nack()

			return nil
		}

		return msg.Ack()
	}), so.concurrency)

	if len(n.cfg.ConsumerLookupAddrs) > 0 {
		err = consumer.ConnectToNSQLookupds(n.cfg.ConsumerLookupAddrs)
	} else {
		err = consumer.ConnectToNSQDs(n.cfg.ConsumerNSQDAddrs)
	}
	if err != nil {
		return err
	}

	n.consumers = append(n.consumers, consumer)

	return nil
}

// Close stops consumers then the producer.
func (n *NSQ) Close() error {
	for _, c := range n.consumers {
		c.Stop()
		<-c.StopChan
	}

	n.producer.Stop()

	return nil
}

type nsqMessage struct {
	msg     *nsq.Message
	topic   string
	env     nsqEnvelope
	autoAck bool
}

func (m *nsqMessage) Topic() string  { return m.topic }
func (m *nsqMessage) Data() []byte   { return m.env.Data }
func (m *nsqMessage) Header() Header { return m.env.Header }

func (m *nsqMessage) Ack() error {
	if !m.autoAck {
		m.msg.Finish()
	}

	return nil
}

func (m *nsqMessage) Nack() error {
	if !m.autoAck {
		m.msg.Requeue(-1)
	}

	return nil
}
