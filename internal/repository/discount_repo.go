package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type DiscountRepository interface {
	Create(ctx context.Context, req *model.DiscountRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DiscountRequest, error)
	Update(ctx context.Context, req *model.DiscountRequest) error
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.DiscountRequest, error)
	FindPending(ctx context.Context) ([]model.DiscountRequest, error)
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, req *model.DiscountRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *discountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DiscountRequest, error) {
	var req model.DiscountRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *discountRepository) Update(ctx context.Context, req *model.DiscountRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *discountRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.DiscountRequest, error) {
	var reqs []model.DiscountRequest
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *discountRepository) FindPending(ctx context.Context) ([]model.DiscountRequest, error) {
	var reqs []model.DiscountRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", model.DiscountPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}
