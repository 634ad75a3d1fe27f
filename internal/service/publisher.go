// Package service publishes domain events to RabbitMQ.  Publishing is best
// effort: failures are logged and counted but never fail the request that
// produced the event.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/metrics"
	q "github.com/iliyamo/mindful/internal/queue"
)

// Publisher is what handlers use to announce domain events.
type Publisher interface {
	FriendRequested(ctx context.Context, ev q.FriendRequestedEvent)
	JournalShared(ctx context.Context, ev q.JournalSharedEvent)
}

// NopPublisher drops every event.  Used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) FriendRequested(context.Context, q.FriendRequestedEvent) {}
func (NopPublisher) JournalShared(context.Context, q.JournalSharedEvent)     {}

// AMQPPublisher sends events as persistent JSON messages on the default
// exchange, routed to the queue named after the event type.  The connection
// is opened lazily and reopened after a failure.
type AMQPPublisher struct {
	URL     string
	Timeout time.Duration

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Timeout: 2 * time.Second}
}

func (p *AMQPPublisher) FriendRequested(ctx context.Context, ev q.FriendRequestedEvent) {
	p.publish(ctx, q.FriendRequestedQueue, ev)
}

func (p *AMQPPublisher) JournalShared(ctx context.Context, ev q.JournalSharedEvent) {
	p.publish(ctx, q.JournalSharedQueue, ev)
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, event any) {
	err := p.send(ctx, queue, event)
	metrics.RecordPublish(queue, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("queue", queue).Msg("event publish failed")
	}
}

func (p *AMQPPublisher) send(ctx context.Context, queue string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.reset()
		return fmt.Errorf("queue declare: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.Timeout)
	defer cancel()
	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// channel returns the open channel, dialing first if needed.  p.mu is held.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.Timeout)})
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
