package publisher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adr1ancosmin/padel-pal/pkg/events"
	"github.com/adr1ancosmin/padel-pal/pkg/rabbitmq"
)

var eventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "booking_events_published_total",
	Help: "Booking events handed to the broker, by result",
}, []string{"result"})

// EventPublisher hands booking events to the broker. It never reports failure:
// callers cannot tell a delivered event from a dropped one.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event events.BookingEvent)
}

// MessagePublisher is implemented by *rabbitmq.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type rabbitEventPublisher struct {
	pub     MessagePublisher
	timeout time.Duration
}

func NewEventPublisher(pub MessagePublisher, timeout time.Duration) EventPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &rabbitEventPublisher{pub: pub, timeout: timeout}
}

func (p *rabbitEventPublisher) PublishBookingCreated(ctx context.Context, event events.BookingEvent) {
	logger := log.WithFields(log.Fields{
		"booking_id": event.BookingID,
		"user_id":    event.UserID,
		"court_id":   event.CourtID,
	})

	body, err := events.Encode(event)
	if err != nil {
		eventsPublishedTotal.WithLabelValues("failed").Inc()
		logger.WithError(err).Error("failed to encode booking event, booking kept")
		return
	}

	// The request may finish before the broker confirms; only the timeout bounds the publish.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	ctx, span := otel.Tracer("booking-service").Start(ctx, rabbitmq.RoutingKey+" publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.Int64("booking.id", event.BookingID)),
	)
	defer span.End()

	msg := amqp.Publishing{
		MessageId: uuid.NewString(),
		Type:      events.TypeBookingCreated,
		Body:      body,
	}
	if err := p.pub.Publish(ctx, rabbitmq.RoutingKey, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		eventsPublishedTotal.WithLabelValues("failed").Inc()
		logger.WithError(err).Error("failed to publish booking event, booking kept")
		return
	}

	eventsPublishedTotal.WithLabelValues("ok").Inc()
	logger.WithField("message_id", msg.MessageId).Info("booking event published")
}
