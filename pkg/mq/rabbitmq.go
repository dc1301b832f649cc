package mq

import (
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultConnectionName = "hypeconnect"
	DefaultHeartbeat      = 10 * time.Second

	deadLetterSuffix = ".dead"
)

var ErrConnectionClosed = errors.New("rabbitmq connection is closed")

type Config struct {
	URL            string        `mapstructure:"url"`
	ConnectionName string        `mapstructure:"connection_name"`
	Heartbeat      time.Duration `mapstructure:"heartbeat"`
}

func (c Config) name() string {
	if c.ConnectionName == "" {
		return DefaultConnectionName
	}
	return c.ConnectionName
}

// RabbitMQ owns one broker connection and hands out a channel per publisher
// or consumer.
type RabbitMQ struct {
	conn   *amqp.Connection
	name   string
	logger *zap.Logger
}

func NewConnection(cfg Config, logger *zap.Logger) (*RabbitMQ, error) {
	heartbeat := cfg.Heartbeat
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}

	properties := amqp.NewConnectionProperties()
	properties.SetClientConnectionName(cfg.name())

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat:  heartbeat,
		Properties: properties,
	})
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", zap.String("connection", cfg.name()), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	logger.Info("Connected to RabbitMQ",
		zap.String("connection", cfg.name()),
		zap.Duration("heartbeat", heartbeat))

	return &RabbitMQ{conn: conn, name: cfg.name(), logger: logger}, nil
}

func (r *RabbitMQ) channel() (*amqp.Channel, error) {
	if r.conn == nil || r.conn.IsClosed() {
		return nil, ErrConnectionClosed
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return ch, nil
}

// DeadLetterQueue names the queue that collects deliveries rejected from
// queue without requeue.
func DeadLetterQueue(queue string) string {
	return queue + deadLetterSuffix
}

// QueueArgs routes rejected deliveries of queue to its dead-letter queue
// through the default exchange.
func QueueArgs(queue string) amqp.Table {
	return amqp.Table{
		amqp.QueueTypeArg:           amqp.QueueTypeClassic,
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DeadLetterQueue(queue),
	}
}

// DeclareTopology declares each durable work queue together with its
// dead-letter queue, so alerts that could not be delivered are kept for
// inspection instead of dropped.
func (r *RabbitMQ) DeclareTopology(queues []string) error {
	ch, err := r.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	for _, queue := range queues {
		dead := DeadLetterQueue(queue)
		if _, err := ch.QueueDeclare(dead, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare dead-letter queue %s: %w", dead, err)
		}

		if _, err := ch.QueueDeclare(queue, true, false, false, false, QueueArgs(queue)); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}

		r.logger.Info("Queue declared", zap.String("queue", queue), zap.String("deadLetter", dead))
	}

	return nil
}

// CreatePublisher opens a channel in confirm mode; Publish returns only once
// the broker has taken responsibility for the message.
func (r *RabbitMQ) CreatePublisher() (Publisher, error) {
	ch, err := r.channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel for publisher: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	return NewRabbitPublisher(ch, r.name), nil
}

func (r *RabbitMQ) CreateConsumer() (Consumer, error) {
	ch, err := r.channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel for consumer: %w", err)
	}

	return NewRabbitConsumer(ch), nil
}

func (r *RabbitMQ) Close() error {
	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}

	r.logger.Info("Closing RabbitMQ connection", zap.String("connection", r.name))

	return r.conn.Close()
}
