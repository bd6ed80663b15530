package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/rabbitmq/amqp091-go"
)

// Client wraps one AMQP connection with the movement ingest exchange and
// queue declared.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key matches the queue name on a direct exchange
	err = c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishMovementIngest publishes one movement ingest message.
func (c *Client) PublishMovementIngest(ctx context.Context, msg *MovementIngestMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published movement ingest message",
		"owner_id", msg.OwnerID,
		"account_id", msg.AccountID,
		"external_id", msg.ExternalID)

	return nil
}

// ConsumeMovementIngest consumes movement ingest messages until ctx is
// cancelled. The handler's error decides the delivery's fate: ErrConflict
// means the movement is already ingested and the delivery is acked,
// ErrValidation drops it as a poison message, anything else requeues it.
func (c *Client) ConsumeMovementIngest(ctx context.Context, handler func(*MovementIngestMessage) error) error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack (we want manual ack)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming movement ingest messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			msg, err := MovementIngestMessageFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal message", "error", err)
				delivery.Nack(false, false)
				continue
			}

			err = handler(msg)
			switch {
			case err == nil:
				delivery.Ack(false)
			case errors.Is(err, apperrors.ErrConflict):
				// Redelivery of an already-ingested movement
				slog.InfoContext(ctx, "Movement already ingested, acking duplicate",
					"account_id", msg.AccountID,
					"external_id", msg.ExternalID)
				delivery.Ack(false)
			case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrNotFound):
				slog.ErrorContext(ctx, "Dropping unprocessable movement ingest message",
					"error", err,
					"account_id", msg.AccountID,
					"external_id", msg.ExternalID)
				delivery.Nack(false, false)
			default:
				slog.ErrorContext(ctx, "Failed to handle message, requeueing",
					"error", err,
					"account_id", msg.AccountID,
					"external_id", msg.ExternalID)
				delivery.Nack(false, true)
			}
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
