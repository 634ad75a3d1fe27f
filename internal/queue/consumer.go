package queue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/metrics"
)

// ActivityLog appends one line per event to <Dir>/activity.log.
type ActivityLog struct {
	Dir string
	mu  sync.Mutex
}

// Handle decodes body according to queue and appends the matching line.
func (a *ActivityLog) Handle(queue string, body []byte) error {
	var line string
	switch queue {
	case FriendRequestedQueue:
		var ev FriendRequestedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal %s: %w", queue, err)
		}
		line = fmt.Sprintf("[%s] Friend request sent | request_id=%d | from=%d | to=%d\n",
			ev.CreatedAt, ev.RequestID, ev.RequesterID, ev.RequestedID)
	case JournalSharedQueue:
		var ev JournalSharedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal %s: %w", queue, err)
		}
		line = fmt.Sprintf("[%s] Journal entry shared | entry_id=%d | user_id=%d | author=%q | category=%q\n",
			ev.CreatedAt, ev.EntryID, ev.UserID, ev.UserName, ev.Category)
	default:
		return fmt.Errorf("unknown queue %q", queue)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", a.Dir, err)
	}
	f, err := os.OpenFile(filepath.Join(a.Dir, "activity.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	metrics.EventsConsumed.WithLabelValues(queue).Inc()
	return nil
}

// Consumer reads both event queues and hands each delivery to Log.
type Consumer struct {
	URL string
	Log *ActivityLog
}

// Run connects to the broker and consumes until ctx is cancelled.  Dial and
// channel failures are retried with exponential backoff capped at 30s.  A
// message that cannot be handled is rejected without requeue so it cannot
// spin the consumer.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			logging.Warn().Err(err).Dur("retry_in", backoff).Msg("activity consumer: dial failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn().Err(err).Msg("activity consumer: reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logging.Warn().Err(err).Msg("activity consumer: set QoS failed")
	}

	type tagged struct {
		queue string
		d     amqp.Delivery
	}
	in := make(chan tagged)
	var wg sync.WaitGroup
	for _, q := range []string{FriendRequestedQueue, JournalSharedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", q, err)
		}
		wg.Add(1)
		go func(q string, msgs <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range msgs {
				select {
				case in <- tagged{q, d}:
				case <-ctx.Done():
					return
				}
			}
		}(q, msgs)
	}
	go func() { wg.Wait(); close(in) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-in:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Log.Handle(m.queue, m.d.Body); err != nil {
				logging.Error().Err(err).Str("queue", m.queue).Msg("activity consumer: handle failed")
				_ = m.d.Nack(false, false)
				continue
			}
			_ = m.d.Ack(false)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
