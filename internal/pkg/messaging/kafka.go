package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures the kafka driver.
type KafkaConfig struct {
	Brokers []string
}

// Kafka implements Messaging over kafka topics with consumer groups.
type Kafka struct {
	cfg    KafkaConfig
	writer *kafka.Writer

	mu      sync.Mutex
	readers []*kafka.Reader
	cancel  []context.CancelFunc
	wg      sync.WaitGroup
}

// NewKafka creates a shared writer; readers are created per subscription.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("messaging: kafka requires at least one broker")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.Hash{},
	}

	return &Kafka{cfg: cfg, writer: writer}, nil
}

// Publish writes one message, keyed for partition affinity when Key is set.
func (k *Kafka) Publish(ctx context.Context, msg OutgoingMessage) (*PublishResult, error) {
	headers := make([]kafka.Header, 0, len(msg.Header))
	for key, v := range msg.Header {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	err := k.writer.WriteMessages(ctx, kafka.Message{
		Topic:   msg.Topic,
		Key:     []byte(msg.Key),
		Value:   msg.Data,
		Headers: headers,
	})
	if err != nil {
		return nil, err
	}

	return &PublishResult{}, nil
}

// Subscribe starts reader goroutines in the configured consumer group.
// Offsets commit only after the handler succeeds, unless auto-ack is on.
func (k *Kafka) Subscribe(ctx context.Context, handler HandlerFunc, opts ...SubscribeOption) error {
	so := newSubscribeOptions(opts)
	if so.channel == "" || so.group == "" {
		return errors.New("messaging: kafka subscription requires a channel and group")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        k.cfg.Brokers,
		Topic:          so.channel,
		GroupID:        so.group,
		QueueCapacity:  so.maxInFlight,
		CommitInterval: 0, // synchronous commits
	})

	runCtx, cancel := context.WithCancel(ctx)

	k.mu.Lock()
	k.readers = append(k.readers, reader)
	k.cancel = append(k.cancel, cancel)
	k.mu.Unlock()

	for i := 0; i < so.concurrency; i++ {
		k.wg.Add(1)
		go k.consume(runCtx, reader, handler, so.autoAck)
	}

	return nil
}

func (k *Kafka) consume(ctx context.Context, reader *kafka.Reader, handler HandlerFunc, autoAck bool) {
	defer k.wg.Done()

	for {
		raw, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			slog.ErrorContext(ctx, "kafka fetch failed", "error", err)

			return
		}

		msg := &kafkaMessage{ctx: ctx, reader: reader, msg: raw, autoAck: autoAck}
		if autoAck {
			if err := reader.CommitMessages(ctx, raw); err != nil {
				slog.ErrorContext(ctx, "kafka commit failed", "error", err, "topic", raw.Topic)
			}
		}

		if err := callHandlerWithRecover(ctx, handler, msg); err != nil {
			_ = msg.Nack()

			continue
		}

		if err := msg.Ack(); err != nil {
			slog.ErrorContext(ctx, "kafka commit failed", "error", err, "topic", raw.Topic)
		}
	}
}

// Close cancels readers and flushes the writer.
func (k *Kafka) Close() error {
	k.mu.Lock()
	for _, cancel := range k.cancel {
		cancel()
	}
	readers := k.readers
	k.mu.Unlock()

	k.wg.Wait()

	var firstErr error
	for _, r := range readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := k.writer.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

type kafkaMessage struct {
	ctx     context.Context
	reader  *kafka.Reader
	msg     kafka.Message
	autoAck bool
}

func (m *kafkaMessage) Topic() string { return m.msg.Topic }
func (m *kafkaMessage) Data() []byte  { return m.msg.Value }

func (m *kafkaMessage) Header() Header {
	h := make(Header, len(m.msg.Headers))
	for _, kh := range m.msg.Headers {
		h[kh.Key] = string(kh.Value)
	}

	return h
}

func (m *kafkaMessage) Ack() error {
	if m.autoAck {
		return nil
	}

	return m.reader.CommitMessages(m.ctx, m.msg)
}

// Nack leaves the offset uncommitted so the group redelivers on rebalance.
func (m *kafkaMessage) Nack() error { return nil }
