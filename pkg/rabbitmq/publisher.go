package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var ErrNotConfirmed = errors.New("rabbitmq: publish not confirmed by broker")

// DefaultDialTimeout bounds a dial when the caller's context carries no deadline.
const DefaultDialTimeout = 10 * time.Second

// Publisher publishes persistent messages to the booking exchange with publisher
// confirms. A dropped connection is redialled on the next Publish, within that
// publish's deadline.
type Publisher struct {
	url string

	// sem serialises use of the channel. Acquire honours ctx, so a publish
	// waiting behind a slow redial gives up at its own deadline.
	sem     *semaphore.Weighted
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	p := newPublisher(url)
	ctx, cancel := context.WithTimeout(context.Background(), DefaultDialTimeout)
	defer cancel()
	if err := p.connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func newPublisher(url string) *Publisher {
	return &Publisher{url: url, sem: semaphore.NewWeighted(1)}
}

// connect dials with a handshake deadline taken from ctx.
func (p *Publisher) connect(ctx context.Context) error {
	timeout := DefaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return fmt.Errorf("rabbitmq dial: %w", context.DeadlineExceeded)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := DeclareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return err
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("rabbitmq confirm mode: %w", err)
	}

	p.conn = conn
	p.channel = ch
	return nil
}

func (p *Publisher) ensureChannel(ctx context.Context) error {
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	p.closeLocked()
	log.WithField("exchange", ExchangeName).Warn("[RabbitMQ] publisher reconnecting")
	return p.connect(ctx)
}

// Publish sends msg with routingKey and blocks until the broker confirms it or
// ctx is done. Waiting for the channel and redialling both count against ctx.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("rabbitmq publisher busy: %w", err)
	}
	defer p.sem.Release(1)

	if err := p.ensureChannel(ctx); err != nil {
		return err
	}

	if msg.ContentType == "" {
		msg.ContentType = "application/json"
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	msg.DeliveryMode = amqp.Persistent
	msg.Headers = injectTrace(ctx, msg.Headers)

	dc, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	ok, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("wait for confirm: %w", err)
	}
	if !ok {
		return ErrNotConfirmed
	}

	log.WithFields(log.Fields{
		"exchange":    ExchangeName,
		"routing_key": routingKey,
		"message_id":  msg.MessageId,
	}).Debug("[RabbitMQ] published")
	return nil
}

func (p *Publisher) closeLocked() {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

// Close waits for an in-flight publish to finish, then closes the connection.
func (p *Publisher) Close() {
	_ = p.sem.Acquire(context.Background(), 1)
	defer p.sem.Release(1)
	p.closeLocked()
}
