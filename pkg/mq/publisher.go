package mq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConfirmed = errors.New("broker did not confirm message")

type Publisher interface {
	Publish(ctx context.Context, exchange string, routingKey string, body []byte) error
}

// RabbitPublisher expects a channel in confirm mode.
type RabbitPublisher struct {
	ch    *amqp.Channel
	appID string
}

func NewRabbitPublisher(ch *amqp.Channel, appID string) Publisher {
	return &RabbitPublisher{ch: ch, appID: appID}
}

// Publish waits for the broker's confirm. A nack, or ctx ending first, is an
// error so the caller leaves the message unmarked and sends it again later.
func (r *RabbitPublisher) Publish(ctx context.Context, exchange string, routingKey string, body []byte) error {
	msg := NewPublishing(body, r.appID, time.Now())

	confirm, err := r.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.MessageId, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.MessageId, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: %w", msg.MessageId, ErrNotConfirmed)
	}

	return nil
}

// NewPublishing builds a persistent JSON message with its own id, so a
// consumer can spot a message that was published twice.
func NewPublishing(body []byte, appID string, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now.UTC(),
		AppId:        appID,
		Body:         body,
	}
}

func (r *RabbitPublisher) Close() error {
	if r.ch != nil {
		return r.ch.Close()
	}

	return nil
}
