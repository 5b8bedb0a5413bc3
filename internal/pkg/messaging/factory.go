package messaging

import (
	"context"
	"errors"
	"fmt"
)

var errHandlerPanic = errors.New("messaging: handler panicked")

// NewFromDriver builds the Messaging implementation named by driver:
// nats, nsq, kafka or google-pubsub.
func NewFromDriver(ctx context.Context, driver string, cfg DriverConfig) (Messaging, error) {
	switch driver {
	case "nats":
		return NewNATS(cfg.NATS)
	case "nsq":
		return NewNSQ(cfg.NSQ)
	case "kafka":
		return NewKafka(cfg.Kafka)
	case "google-pubsub":
		return NewPubSub(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("messaging: unknown driver %q", driver)
	}
}

// DriverConfig holds per-driver settings; only the selected driver's
// section is read.
type DriverConfig struct {
	NATS   NATSConfig
	NSQ    NSQConfig
	Kafka  KafkaConfig
	PubSub PubSubConfig
}
