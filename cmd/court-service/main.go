package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/adr1ancosmin/padel-pal/config"
	"github.com/adr1ancosmin/padel-pal/internal/court/handler"
	"github.com/adr1ancosmin/padel-pal/internal/court/models"
	"github.com/adr1ancosmin/padel-pal/internal/court/repository"
	"github.com/adr1ancosmin/padel-pal/internal/court/service"
	"github.com/adr1ancosmin/padel-pal/internal/server"
	"github.com/adr1ancosmin/padel-pal/pkg/database"
	"github.com/adr1ancosmin/padel-pal/pkg/logging"
	"github.com/adr1ancosmin/padel-pal/pkg/obs"
)

const serviceName = "court-service"

func main() {
	if err := run(); err != nil {
		log.WithField("service", serviceName).WithError(err).Error("service stopped")
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred cleanup flushes spans and
// closes broker and Redis connections.
func run() error {
	var cfg config.Catalog
	if err := config.Load(&cfg); err != nil {
		return err
	}
	logger := logging.Init(serviceName, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	defer shutdownTracer(context.Background())

	db := database.NewPostgresDB(cfg.DSN(), &models.Court{})

	courtSvc := service.NewCourtService(repository.NewCourtRepository(db))

	e := server.New(serviceName)
	handler.NewCourtHandler(courtSvc).RegisterRoutes(e)

	addr := cfg.Addr("8082")
	logger.Infof("Court Service starting on %s", addr)
	if err := server.Run(ctx, e, addr); err != nil {
		return err
	}
	logger.Info("court service stopped")
	return nil
}
