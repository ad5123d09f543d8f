package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, movement *model.StockMovement) error
	FindByKey(ctx context.Context, referenceCode string, locationID uuid.UUID, size string, limit int) ([]model.StockMovement, error)
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]model.StockMovement, error)
}

type stockMovementRepository struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateTx(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockMovementRepository) FindByKey(ctx context.Context, referenceCode string, locationID uuid.UUID, size string, limit int) ([]model.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("reference_code = ? AND location_id = ? AND size = ?", referenceCode, locationID, size).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}
