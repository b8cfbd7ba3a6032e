package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/alert"
)

// AMQPPublisher publishes alerts as persistent JSON messages on a durable queue
// through the default exchange.
type AMQPPublisher struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

func NewAMQPPublisher(url string, queue string, timeout time.Duration) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto delete
		false, // exclusive
		false, // no wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AMQPPublisher{conn: conn, ch: ch, queue: q.Name, timeout: timeout}, nil
}

// Publish implements alert.Publisher.
func (p *AMQPPublisher) Publish(ctx context.Context, a alert.AttendanceAlert) error {
	msg, err := newPublishing(a)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish alert %s: %w", a.ID, err)
	}
	return nil
}

// newPublishing encodes a as a persistent JSON message typed by its status.
func newPublishing(a alert.AttendanceAlert) (amqp.Publishing, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode alert: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    a.ID,
		Timestamp:    a.CreatedAt,
		Type:         "attendance." + string(a.Status),
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
