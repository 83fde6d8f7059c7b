// Package messaging publishes domain events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	defaultExchange       = "storefront.events"
	defaultPublishTimeout = 5 * time.Second
	defaultMaxAttempts    = 3
)

// session is one open channel on a broker connection
type session interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

// DialFunc opens a session and declares the exchange on it
type DialFunc func(url, exchange string) (session, error)

// AMQPPublisher publishes events to a topic exchange. The connection is
// opened on first use and reopened when the broker drops it.
type AMQPPublisher struct {
	url            string
	exchange       string
	dial           DialFunc
	publishTimeout time.Duration
	maxAttempts    int
	backoff        func(attempt int) time.Duration
	logger         *zap.Logger

	mu      sync.Mutex
	session session
	closed  bool
}

var _ shared.EventPublisher = (*AMQPPublisher)(nil)

// Option configures an AMQPPublisher
type Option func(*AMQPPublisher)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *AMQPPublisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPublishTimeout bounds a single publish call
func WithPublishTimeout(d time.Duration) Option {
	return func(p *AMQPPublisher) {
		p.publishTimeout = d
	}
}

// WithMaxAttempts sets how many times a message is tried across reconnects
func WithMaxAttempts(n int) Option {
	return func(p *AMQPPublisher) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithDialer replaces the broker dialer
func WithDialer(dial DialFunc) Option {
	return func(p *AMQPPublisher) {
		p.dial = dial
	}
}

func withBackoff(fn func(int) time.Duration) Option {
	return func(p *AMQPPublisher) {
		p.backoff = fn
	}
}

// NewAMQPPublisher creates a publisher. No connection is made until the
// first Publish.
func NewAMQPPublisher(url, exchange string, opts ...Option) *AMQPPublisher {
	if exchange == "" {
		exchange = defaultExchange
	}
	p := &AMQPPublisher{
		url:            url,
		exchange:       exchange,
		dial:           dialBroker,
		publishTimeout: defaultPublishTimeout,
		maxAttempts:    defaultMaxAttempts,
		backoff:        exponentialBackoff,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish sends each event as a persistent JSON message routed by
// "<aggregate_type>.<event_type>"
func (p *AMQPPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, event := range events {
		msg, err := toPublishing(event)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := p.publishWithRetry(ctx, RoutingKey(event), msg); err != nil {
			errs = append(errs, fmt.Errorf("publish %s %s: %w", event.EventType(), event.EventID(), err))
			continue
		}
		p.logger.Debug("Event published",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.String("exchange", p.exchange))
	}
	return errors.Join(errs...)
}

func (p *AMQPPublisher) publishWithRetry(ctx context.Context, key string, msg amqp091.Publishing) error {
	var lastErr error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.backoff(attempt - 1)):
			}
		}

		s, err := p.current()
		if err != nil {
			if errors.Is(err, errPublisherClosed) {
				return err
			}
			lastErr = err
			continue
		}

		pctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
		err = s.PublishWithContext(pctx, p.exchange, key, false, false, msg)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isConnectionError(err) && !s.IsClosed() {
			return err
		}
		p.logger.Warn("AMQP session lost, reconnecting", zap.Int("attempt", attempt+1), zap.Error(err))
		p.drop(s)
	}
	return lastErr
}

var errPublisherClosed = errors.New("publisher is closed")

// current returns the open session, dialing when there is none
func (p *AMQPPublisher) current() (session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, errPublisherClosed
	}
	if p.session != nil && !p.session.IsClosed() {
		return p.session, nil
	}
	s, err := p.dial(p.url, p.exchange)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	p.session = s
	p.logger.Info("AMQP publisher connected", zap.String("exchange", p.exchange))
	return s, nil
}

func (p *AMQPPublisher) drop(s session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == s {
		_ = s.Close()
		p.session = nil
	}
}

// Close shuts the connection; later publishes fail
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.session == nil {
		return nil
	}
	err := p.session.Close()
	p.session = nil
	return err
}

// RoutingKey is the topic key an event is published under
func RoutingKey(event shared.DomainEvent) string {
	return strings.ToLower(event.AggregateType()) + "." + event.EventType()
}

func toPublishing(event shared.DomainEvent) (amqp091.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID().String(),
		Timestamp:    event.OccurredAt(),
		Type:         event.EventType(),
		Headers: amqp091.Table{
			"store_id":       event.StoreID().String(),
			"aggregate_id":   event.AggregateID().String(),
			"aggregate_type": event.AggregateType(),
		},
		Body: body,
	}, nil
}

// exponentialBackoff doubles from 200ms and caps at 5s
func exponentialBackoff(attempt int) time.Duration {
	d := 200 * time.Millisecond
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= 5*time.Second {
			return 5 * time.Second
		}
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := err.Error()
	for _, s := range []string{"connection refused", "connection reset", "closed", "EOF", "broken pipe"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
