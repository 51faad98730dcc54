package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/adr1ancosmin/padel-pal/config"
	"github.com/adr1ancosmin/padel-pal/internal/notification/consumer"
	"github.com/adr1ancosmin/padel-pal/internal/notification/handler"
	"github.com/adr1ancosmin/padel-pal/internal/notification/models"
	"github.com/adr1ancosmin/padel-pal/internal/notification/repository"
	"github.com/adr1ancosmin/padel-pal/internal/notification/service"
	"github.com/adr1ancosmin/padel-pal/internal/server"
	"github.com/adr1ancosmin/padel-pal/pkg/database"
	"github.com/adr1ancosmin/padel-pal/pkg/logging"
	"github.com/adr1ancosmin/padel-pal/pkg/obs"
	"github.com/adr1ancosmin/padel-pal/pkg/rabbitmq"
	"github.com/adr1ancosmin/padel-pal/pkg/redelivery"
)

const serviceName = "notification-service"

func main() {
	if err := run(); err != nil {
		log.WithField("service", serviceName).WithError(err).Error("service stopped")
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred cleanup flushes spans and
// closes broker and Redis connections.
func run() error {
	var cfg config.Notification
	if err := config.Load(&cfg); err != nil {
		return err
	}
	logger := logging.Init(serviceName, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	defer shutdownTracer(context.Background())

	db := database.NewPostgresDB(cfg.DSN(), &models.Notification{})

	var tracker consumer.AttemptTracker
	if cfg.RedisURL != "" {
		t, err := redelivery.New(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to Redis: %w", err)
		}
		defer t.Close()
		tracker = t
	} else {
		logger.Warn("REDIS_URL not set, failed messages are redelivered without limit")
	}

	mq, err := rabbitmq.NewConsumer(cfg.RabbitURL, serviceName+"-"+uuid.NewString()[:8], cfg.Prefetch)
	if err != nil {
		return fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	defer mq.Close()
	connClosed := mq.NotifyClose()

	msgs, err := mq.Consume(ctx)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	// Wiring
	notificationRepo := repository.NewNotificationRepository(db)
	notificationSvc := service.NewNotificationService(notificationRepo)
	eventConsumer := consumer.NewEventConsumer(notificationSvc, tracker, consumer.Config{
		Workers:        cfg.Workers,
		ProcessTimeout: cfg.ProcessTimeout,
		MaxDeliveries:  cfg.MaxDeliveries,
	})

	e := server.New(serviceName)
	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := cfg.Addr("8084")
		logger.Infof("Notification Service starting on %s", addr)
		return server.Run(gctx, e, addr)
	})
	g.Go(func() error {
		eventConsumer.Run(gctx, msgs)
		if gctx.Err() == nil {
			return errors.New("delivery channel closed")
		}
		return nil
	})
	g.Go(func() error {
		select {
		case amqpErr := <-connClosed:
			if amqpErr != nil {
				return fmt.Errorf("rabbitmq connection closed: %w", amqpErr)
			}
			return errors.New("rabbitmq connection closed")
		case <-gctx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("notification service stopped")
	return nil
}
