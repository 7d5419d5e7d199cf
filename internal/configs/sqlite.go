package config

import (
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "cafe-ops-system.com/cafe-ops-system/internal/models"
)

func New(dsn string) *gorm.DB {
	dbLogger := logger.New(
		stdlog.New(os.Stdout, "", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		stdlog.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.TaskTemplate{},
		&model.WeeklySlot{},
		&model.Team{},
		&model.DailyTaskOccurrence{},
	); err != nil {
		stdlog.Fatalf("migration failed: %v", err)
	}

	return db
}
