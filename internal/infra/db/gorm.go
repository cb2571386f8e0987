package db

import (
	"marketplace/internal/config"
	"marketplace/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}
	return gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

// テーブルと一意インデックスを作る
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Seller{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.Order{},
		&model.Return{},
		&model.Review{},
	)
}
