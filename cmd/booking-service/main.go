package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/adr1ancosmin/padel-pal/config"
	"github.com/adr1ancosmin/padel-pal/internal/booking/client"
	"github.com/adr1ancosmin/padel-pal/internal/booking/handler"
	"github.com/adr1ancosmin/padel-pal/internal/booking/models"
	"github.com/adr1ancosmin/padel-pal/internal/booking/publisher"
	"github.com/adr1ancosmin/padel-pal/internal/booking/repository"
	"github.com/adr1ancosmin/padel-pal/internal/booking/service"
	"github.com/adr1ancosmin/padel-pal/internal/server"
	"github.com/adr1ancosmin/padel-pal/pkg/database"
	"github.com/adr1ancosmin/padel-pal/pkg/logging"
	"github.com/adr1ancosmin/padel-pal/pkg/obs"
	"github.com/adr1ancosmin/padel-pal/pkg/rabbitmq"
)

const serviceName = "booking-service"

func main() {
	if err := run(); err != nil {
		log.WithField("service", serviceName).WithError(err).Error("service stopped")
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred cleanup flushes spans and
// closes broker and Redis connections.
func run() error {
	var cfg config.Booking
	if err := config.Load(&cfg); err != nil {
		return err
	}
	logger := logging.Init(serviceName, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	defer shutdownTracer(context.Background())

	db := database.NewPostgresDB(cfg.DSN(), &models.Booking{})

	mq, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	defer mq.Close()

	// Wiring
	bookingRepo := repository.NewBookingRepository(db)
	checker := client.NewExistenceClient(cfg.UserServiceURL, cfg.CourtServiceURL, cfg.LookupTimeout)
	eventPub := publisher.NewEventPublisher(mq, cfg.PublishTimeout)
	bookingSvc := service.NewBookingService(bookingRepo, checker, eventPub)

	e := server.New(serviceName)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	addr := cfg.Addr("8083")
	logger.Infof("Booking Service starting on %s", addr)
	if err := server.Run(ctx, e, addr); err != nil {
		return err
	}
	logger.Info("booking service stopped")
	return nil
}
