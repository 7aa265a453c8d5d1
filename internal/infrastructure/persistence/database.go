package persistence

import (
	"fmt"
	"time"

	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/identity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/trade"
	"github.com/stocker/backend/internal/infrastructure/config"
	"github.com/stocker/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the Postgres connection with the configured pool
func NewDatabase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	return db, nil
}

// AutoMigrate creates or updates the schema from the entity definitions.
// Development convenience; deployments run the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&inventory.Category{},
		&inventory.Item{},
		&inventory.ItemVariant{},
		&partner.Country{},
		&partner.City{},
		&partner.Location{},
		&partner.AcquisitionSource{},
		&partner.Supplier{},
		&partner.Client{},
		&trade.SupplierOrder{},
		&trade.SupplierOrderedItem{},
		&trade.ClientOrder{},
		&trade.ClientOrderedItem{},
		&trade.Sale{},
		&trade.SoldItem{},
		&activity.Activity{},
	)
}
