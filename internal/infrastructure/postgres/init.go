package postgres

import (
	"log"

	"github.com/mallmarketing055-de/mall-sub000/internal/config"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.RewardConfig) *gorm.DB {
	dsn := cfg.RewardDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.CustomerModel{},
		&models.TransactionModel{},
		&models.RewardJobModel{},
		&models.RewardSettingsModel{},
		&models.ProductModel{},
		&models.CartItemModel{},
	)

	return db
}
