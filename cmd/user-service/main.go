package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/adr1ancosmin/padel-pal/config"
	"github.com/adr1ancosmin/padel-pal/internal/user/handler"
	"github.com/adr1ancosmin/padel-pal/internal/user/models"
	"github.com/adr1ancosmin/padel-pal/internal/user/repository"
	"github.com/adr1ancosmin/padel-pal/internal/user/service"
	"github.com/adr1ancosmin/padel-pal/internal/server"
	"github.com/adr1ancosmin/padel-pal/pkg/database"
	"github.com/adr1ancosmin/padel-pal/pkg/logging"
	"github.com/adr1ancosmin/padel-pal/pkg/obs"
)

const serviceName = "user-service"

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

	db := database.NewPostgresDB(cfg.DSN(), &models.User{})

	userSvc := service.NewUserService(repository.NewUserRepository(db))

	e := server.New(serviceName)
	handler.NewUserHandler(userSvc).RegisterRoutes(e)

	addr := cfg.Addr("8081")
	logger.Infof("User Service starting on %s", addr)
	if err := server.Run(ctx, e, addr); err != nil {
		return err
	}
	logger.Info("user service stopped")
	return nil
}
