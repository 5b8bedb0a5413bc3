// Package mq publishes the identity events to the message broker.
package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

// MQ wraps the broker publisher for the identity module.
type MQ struct {
	pub messaging.Publisher
}

// New creates the identity publisher.
func New(pub messaging.Publisher) *MQ {
	return &MQ{pub: pub}
}

// PublishOtpIssued emits the challenge code for email delivery.
func (m *MQ) PublishOtpIssued(ctx context.Context, ev event.OtpIssued) error {
	return m.publish(ctx, event.OtpIssuedDestination, strconv.FormatInt(ev.UserID, 10), ev)
}

// PublishTempPassword emits the temporary password for email delivery.
func (m *MQ) PublishTempPassword(ctx context.Context, ev event.TempPassword) error {
	return m.publish(ctx, event.TempPasswordDestination, strconv.FormatInt(ev.UserID, 10), ev)
}

func (m *MQ) publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	header := messaging.Header{}
	if cid := instrument.GetCorrelationID(ctx); cid != "" {
		header["cID"] = cid
	}

	_, err = m.pub.Publish(ctx, messaging.OutgoingMessage{
		Topic:  topic,
		Key:    key,
		Data:   data,
		Header: header,
	})

	return err
}
