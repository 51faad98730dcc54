package database

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// NewPostgresDB opens the service database, retrying while Postgres starts up,
// and auto-migrates the given models. Each service owns its own database and
// only migrates its own tables.
func NewPostgresDB(dsn string, models ...any) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.WithError(err).WithField("attempt", attempt).Warn("database not ready, retrying")
		time.Sleep(connectBackoff)
	}
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}
