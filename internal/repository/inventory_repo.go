package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

// InventoryRepository owns the per-(reference, location, size) stock rows.
// Debit and credit are single-statement conditional updates so that two
// concurrent writers can never drive a quantity below zero.
type InventoryRepository interface {
	Find(ctx context.Context, referenceCode string, locationID uuid.UUID, size string) (*model.InventoryRecord, error)
	FindByReferenceAndLocation(ctx context.Context, referenceCode string, locationID uuid.UUID) ([]model.InventoryRecord, error)
	FindByReferenceExcluding(ctx context.Context, referenceCode string, excludeLocationID uuid.UUID) ([]model.InventoryRecord, error)

	// DebitStockTx decrements stock_quantity by qty only if at least qty is
	// available. Returns the rows affected: 0 means insufficient stock (or no
	// such row), 1 means the debit landed.
	DebitStockTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) (int64, error)

	// CreditStockTx increments stock_quantity by qty, creating the row with
	// zero prices when the (reference, location, size) key does not exist yet.
	CreditStockTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) error

	// ShiftToDisplayTx moves qty from stock_quantity to display_quantity;
	// ShiftToStockTx moves it back. Both are conditional on availability.
	ShiftToDisplayTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) (int64, error)
	ShiftToStockTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) (int64, error)

	FindTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string) (*model.InventoryRecord, error)
	DB() *gorm.DB
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) DB() *gorm.DB { return r.db }

func (r *inventoryRepository) Find(ctx context.Context, referenceCode string, locationID uuid.UUID, size string) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("reference_code = ? AND location_id = ? AND size = ?", referenceCode, locationID, size).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inventoryRepository) FindTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := tx.
		Where("reference_code = ? AND location_id = ? AND size = ?", referenceCode, locationID, size).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *inventoryRepository) FindByReferenceAndLocation(ctx context.Context, referenceCode string, locationID uuid.UUID) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("reference_code = ? AND location_id = ?", referenceCode, locationID).
		Order("size ASC").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepository) FindByReferenceExcluding(ctx context.Context, referenceCode string, excludeLocationID uuid.UUID) ([]model.InventoryRecord, error) {
	var recs []model.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("reference_code = ? AND location_id <> ? AND (stock_quantity > 0 OR display_quantity > 0)", referenceCode, excludeLocationID).
		Order("location_id ASC, size ASC").
		Find(&recs).Error
	return recs, err
}

func (r *inventoryRepository) DebitStockTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) (int64, error) {
	res := tx.Model(&model.InventoryRecord{}).
		Where("reference_code = ? AND location_id = ? AND size = ? AND stock_quantity >= ?",
			referenceCode, locationID, size, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *inventoryRepository) CreditStockTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) error {
	res := tx.Model(&model.InventoryRecord{}).
		Where("reference_code = ? AND location_id = ? AND size = ?", referenceCode, locationID, size).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	rec := model.InventoryRecord{
		ReferenceCode: referenceCode,
		LocationID:    locationID,
		Size:          size,
		StockQuantity: qty,
	}
	return tx.Create(&rec).Error
}

func (r *inventoryRepository) ShiftToDisplayTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) (int64, error) {
	res := tx.Model(&model.InventoryRecord{}).
		Where("reference_code = ? AND location_id = ? AND size = ? AND stock_quantity >= ?",
			referenceCode, locationID, size, qty).
		Updates(map[string]interface{}{
			"stock_quantity":   gorm.Expr("stock_quantity - ?", qty),
			"display_quantity": gorm.Expr("display_quantity + ?", qty),
		})
	return res.RowsAffected, res.Error
}

func (r *inventoryRepository) ShiftToStockTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int) (int64, error) {
	res := tx.Model(&model.InventoryRecord{}).
		Where("reference_code = ? AND location_id = ? AND size = ? AND display_quantity >= ?",
			referenceCode, locationID, size, qty).
		Updates(map[string]interface{}{
			"stock_quantity":   gorm.Expr("stock_quantity + ?", qty),
			"display_quantity": gorm.Expr("display_quantity - ?", qty),
		})
	return res.RowsAffected, res.Error
}
