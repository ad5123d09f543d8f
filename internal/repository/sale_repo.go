package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	UpdateTx(tx *gorm.DB, sale *model.Sale) error
	FindBySellerAndDay(ctx context.Context, sellerID uuid.UUID, day time.Time) ([]model.Sale, error)
	FindPendingByLocation(ctx context.Context, locationID uuid.UUID) ([]model.Sale, error)
	FindConfirmedMissingReceipt(ctx context.Context, before time.Time, limit int) ([]model.Sale, error)
	Update(ctx context.Context, sale *model.Sale) error
	DB() *gorm.DB
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) DB() *gorm.DB { return r.db }

func (r *saleRepository) CreateTx(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.
		Preload("Items").
		Preload("Payments").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) UpdateTx(tx *gorm.DB, sale *model.Sale) error {
	return tx.Save(sale).Error
}

// FindBySellerAndDay returns the seller's sales whose created_at falls inside
// the local calendar day of the given instant.
func (r *saleRepository) FindBySellerAndDay(ctx context.Context, sellerID uuid.UUID, day time.Time) ([]model.Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("seller_id = ? AND created_at >= ? AND created_at < ?", sellerID, start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

// FindConfirmedMissingReceipt lists confirmed sales older than the cutoff
// that still have no receipt reference. Feeds the receipt retry cron.
func (r *saleRepository) FindConfirmedMissingReceipt(ctx context.Context, before time.Time, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("status = ? AND receipt_reference IS NULL AND created_at < ?", model.SaleConfirmed, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) Update(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) FindPendingByLocation(ctx context.Context, locationID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Preload("Seller").
		Where("location_id = ? AND status = ?", locationID, model.SalePendingConfirmation).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}
