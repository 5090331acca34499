package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// publisher is the subset of *amqp091.Channel the notifier needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type AMQPNotifier struct {
	conn    *amqp091.Connection
	channel publisher
	closer  func() error
	queue   string
	logger  *zap.Logger
}

func NewAMQPNotifier(url, queue string, logger *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	logger.Info("Invitation queue ready", zap.String("queue", queue))

	return &AMQPNotifier{
		conn:    conn,
		channel: channel,
		closer:  channel.Close,
		queue:   queue,
		logger:  logger,
	}, nil
}

// SendInvitation publishes the invitation to the default exchange, routed by queue name.
func (n *AMQPNotifier) SendInvitation(ctx context.Context, inv Invitation) error {
	body, err := inv.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal invitation: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.channel.PublishWithContext(
		ctx,
		"",      // default exchange
		n.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Type:         "family.invitation",
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish invitation: %w", err)
	}

	n.logger.Info("Published invitation",
		zap.String("email", inv.Email),
		zap.String("family_id", inv.FamilyID),
		zap.String("queue", n.queue),
	)
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.closer != nil {
		_ = n.closer()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
