package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

// NewDatabase establishes a GORM connection and runs AutoMigrate to create
// or update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// throwaway containers.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Location{},
		&model.User{},
		&model.InventoryRecord{},
		&model.StockMovement{},
		&model.Sale{},
		&model.SaleItem{},
		&model.SalePayment{},
		&model.TransferRequest{},
		&model.ReturnRequest{},
		&model.ReturnNotification{},
		&model.DiscountRequest{},
		&model.Expense{},
	)
}
