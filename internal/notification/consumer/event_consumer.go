package consumer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adr1ancosmin/padel-pal/internal/notification/service"
	"github.com/adr1ancosmin/padel-pal/pkg/events"
	"github.com/adr1ancosmin/padel-pal/pkg/rabbitmq"
)

var ErrTooManyDeliveries = errors.New("delivery limit exceeded")

var (
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_messages_total",
		Help: "Booking event deliveries by outcome",
	}, []string{"outcome"})
	processingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "notification_message_processing_seconds",
		Help:    "Time spent handling one booking event delivery",
		Buckets: prometheus.DefBuckets,
	})
)

type Outcome int

const (
	// Processed acknowledges the delivery.
	Processed Outcome = iota
	// Failed negatively acknowledges with requeue, so the broker redelivers.
	Failed
	// Rejected negatively acknowledges without requeue; the queue dead-letters it.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Failed:
		return "failed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type Result struct {
	Outcome Outcome
	Reason  error
}

// AttemptTracker counts deliveries of a message across consumer instances.
// *redelivery.Tracker implements it.
type AttemptTracker interface {
	Attempt(ctx context.Context, key string) (int64, error)
	Forget(ctx context.Context, key string) error
}

type Config struct {
	Workers        int
	ProcessTimeout time.Duration
	// MaxDeliveries bounds redelivery when a tracker is set. Zero means unbounded.
	MaxDeliveries int64
}

type EventConsumer struct {
	svc     service.NotificationService
	tracker AttemptTracker
	cfg     Config
}

// NewEventConsumer builds a consumer. tracker may be nil, in which case failed
// messages are redelivered without limit.
func NewEventConsumer(svc service.NotificationService, tracker AttemptTracker, cfg Config) *EventConsumer {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = 10 * time.Second
	}
	return &EventConsumer{svc: svc, tracker: tracker, cfg: cfg}
}

// Run handles deliveries on cfg.Workers goroutines until msgs closes or ctx is
// done, and returns once every worker has stopped.
func (ec *EventConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	var wg sync.WaitGroup
	for i := 0; i < ec.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-msgs:
					if !ok {
						return
					}
					ec.handleMessage(ctx, msg)
				}
			}
		}()
	}
	wg.Wait()
	log.Info("[EventConsumer] stopped")
}

func (ec *EventConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	start := time.Now()
	res := ec.Process(ctx, msg)
	processingDuration.Observe(time.Since(start).Seconds())
	messagesTotal.WithLabelValues(res.Outcome.String()).Inc()

	logger := log.WithFields(log.Fields{
		"message_id":  msg.MessageId,
		"redelivered": msg.Redelivered,
		"outcome":     res.Outcome.String(),
	})

	var err error
	switch res.Outcome {
	case Processed:
		err = msg.Ack(false)
	case Failed:
		logger.WithError(res.Reason).Warn("[EventConsumer] processing failed, requeueing")
		err = msg.Nack(false, true)
	default:
		logger.WithError(res.Reason).Error("[EventConsumer] rejecting message to dead-letter queue")
		err = msg.Nack(false, false)
	}
	if err != nil {
		logger.WithError(err).Error("[EventConsumer] failed to settle delivery")
	}
}

// Process handles one delivery and reports how it should be settled.
func (ec *EventConsumer) Process(ctx context.Context, msg amqp.Delivery) Result {
	key := deliveryKey(msg)

	if ec.tracker != nil && ec.cfg.MaxDeliveries > 0 {
		n, err := ec.tracker.Attempt(ctx, key)
		if err != nil {
			log.WithError(err).Warn("[EventConsumer] delivery count unavailable, processing anyway")
		} else if n > ec.cfg.MaxDeliveries {
			ec.forget(ctx, key)
			return Result{Outcome: Rejected, Reason: fmt.Errorf("%w: %d deliveries", ErrTooManyDeliveries, n)}
		}
	}

	ev, err := events.Decode(msg.Body)
	if err != nil {
		ec.forget(ctx, key)
		return Result{Outcome: Rejected, Reason: err}
	}
	if ev.EventType != "" && ev.EventType != events.TypeBookingCreated {
		ec.forget(ctx, key)
		return Result{Outcome: Rejected, Reason: fmt.Errorf("%w: unexpected event type %q", events.ErrMalformedEvent, ev.EventType)}
	}

	pctx, cancel := context.WithTimeout(rabbitmq.ContextFromDelivery(ctx, msg), ec.cfg.ProcessTimeout)
	defer cancel()

	pctx, span := otel.Tracer("notification-service").Start(pctx, rabbitmq.RoutingKey+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.Int64("booking.id", ev.BookingID)),
	)
	defer span.End()

	if _, err := ec.svc.HandleBookingEvent(pctx, ev); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handle booking event")
		return Result{Outcome: Failed, Reason: err}
	}

	ec.forget(ctx, key)
	return Result{Outcome: Processed}
}

func (ec *EventConsumer) forget(ctx context.Context, key string) {
	if ec.tracker == nil || ec.cfg.MaxDeliveries <= 0 {
		return
	}
	if err := ec.tracker.Forget(ctx, key); err != nil {
		log.WithError(err).Warn("[EventConsumer] failed to clear delivery count")
	}
}

func deliveryKey(msg amqp.Delivery) string {
	if msg.MessageId != "" {
		return msg.MessageId
	}
	sum := sha256.Sum256(msg.Body)
	return hex.EncodeToString(sum[:])
}
