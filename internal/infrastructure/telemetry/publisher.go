package telemetry

import (
	"context"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentedPublisher traces and counts event publication
type InstrumentedPublisher struct {
	next     shared.EventPublisher
	events   *Counter
	duration *Histogram
}

var _ shared.EventPublisher = (*InstrumentedPublisher)(nil)

// NewInstrumentedPublisher wraps next with a span per batch and
// storefront.events.published / storefront.events.publish.duration metrics
func NewInstrumentedPublisher(next shared.EventPublisher, meter metric.Meter) (*InstrumentedPublisher, error) {
	events, err := NewCounter(meter, "storefront.events.published", "Domain events handed to the broker", "{event}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, "storefront.events.publish.duration", "Time spent publishing a batch of events", "s", PublishDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return &InstrumentedPublisher{next: next, events: events, duration: duration}, nil
}

// Publish implements shared.EventPublisher
func (p *InstrumentedPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx, span := StartSpan(ctx, "events.publish",
		attribute.Int("events.count", len(events)),
		attribute.String("store_id", events[0].StoreID().String()))
	defer span.End()

	started := time.Now()
	err := p.next.Publish(ctx, events...)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		RecordError(span, err)
	}
	p.duration.RecordDuration(ctx, time.Since(started), AttrOutcome.String(outcome))
	for _, e := range events {
		p.events.Add(ctx, 1, AttrEventType.String(e.EventType()), AttrOutcome.String(outcome))
	}
	return err
}
