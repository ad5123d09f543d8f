package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type TransferRepository interface {
	Create(ctx context.Context, req *model.TransferRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TransferRequest, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.TransferRequest, error)
	UpdateTx(tx *gorm.DB, req *model.TransferRequest) error
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.TransferRequest, error)
	FindByStatus(ctx context.Context, statuses ...string) ([]model.TransferRequest, error)
	FindByCourier(ctx context.Context, courierID uuid.UUID, statuses ...string) ([]model.TransferRequest, error)
	DB() *gorm.DB
}

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) DB() *gorm.DB { return r.db }

func (r *transferRepository) Create(ctx context.Context, req *model.TransferRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *transferRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TransferRequest, error) {
	var req model.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("SourceLocation").
		Preload("DestinationLocation").
		First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *transferRepository) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.TransferRequest, error) {
	var req model.TransferRequest
	err := tx.First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *transferRepository) UpdateTx(tx *gorm.DB, req *model.TransferRequest) error {
	return tx.Save(req).Error
}

func (r *transferRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.TransferRequest, error) {
	var reqs []model.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("SourceLocation").
		Preload("DestinationLocation").
		Where("requester_id = ?", requesterID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *transferRepository) FindByStatus(ctx context.Context, statuses ...string) ([]model.TransferRequest, error) {
	var reqs []model.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("SourceLocation").
		Preload("DestinationLocation").
		Where("status IN ?", statuses).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *transferRepository) FindByCourier(ctx context.Context, courierID uuid.UUID, statuses ...string) ([]model.TransferRequest, error) {
	var reqs []model.TransferRequest
	q := r.db.WithContext(ctx).
		Preload("SourceLocation").
		Preload("DestinationLocation").
		Where("courier_id = ?", courierID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("requested_at ASC").Find(&reqs).Error
	return reqs, err
}
