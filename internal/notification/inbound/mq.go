// Package inbound subscribes the notification consumers to the broker.
package inbound

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/goroutine"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

type consumerEntry struct {
	name        string
	destination string
	handler     messaging.HandlerFunc
}

// MQ owns the notification subscriptions.
type MQ struct {
	consumer messaging.Consumer
	manager  *goroutine.Manager
	handler  *Handler
}

// NewMQ creates the consumer registration for the notification module.
func NewMQ(consumer messaging.Consumer, manager *goroutine.Manager, handler *Handler) *MQ {
	return &MQ{consumer: consumer, manager: manager, handler: handler}
}

// Register subscribes every consumer enabled in
// modules.notification.consumer_names.
func (m *MQ) Register(ctx context.Context, cfg config.Config) error {
	enabled := cfg.GetArray("modules.notification.consumer_names")

	consumers := []consumerEntry{
		{
			name:        event.OtpIssuedConsumerName,
			destination: event.OtpIssuedDestination,
			handler:     m.handler.OtpIssued,
		},
		{
			name:        event.TempPasswordConsumerName,
			destination: event.TempPasswordDestination,
			handler:     m.handler.TempPassword,
		},
	}

	for _, c := range consumers {
		if !lo.Contains(enabled, c.name) {
			slog.InfoContext(ctx, "notification consumer disabled", "consumer", c.name)

			continue
		}

		c := c
		m.manager.Go(ctx, func(ctx context.Context) {
			err := m.consumer.Subscribe(ctx, c.handler,
				messaging.WithChannel(c.destination),
				messaging.WithQueueGroup(c.name),
				messaging.WithGroup(c.name),
				messaging.WithSubscription(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(10),
				messaging.WithMaxInFlight(10),
			)
			if err != nil {
				slog.ErrorContext(ctx, "failed to register notification consumer",
					"error", err,
					"consumer", c.name,
				)

				return
			}

			slog.InfoContext(ctx, "notification consumer registered",
				"consumer", c.name,
				"destination", c.destination,
			)
		})
	}

	return nil
}
