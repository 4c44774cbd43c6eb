package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

var ErrEmptyDSN = errors.New("database dsn is empty")

func Connect(ctx context.Context, dsn string) error {
	log := WithContext(ctx)

	if dsn == "" {
		return ErrEmptyDSN
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.WithError(err).Error("Falha ao abrir conexão com o banco")
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		log.WithError(err).Error("Banco de dados não respondeu ao ping")
		return fmt.Errorf("ping database: %w", err)
	}

	DB = db
	log.Info("Conectado ao banco de dados")
	return nil
}
