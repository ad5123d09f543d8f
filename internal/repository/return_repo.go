package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type ReturnRepository interface {
	Create(ctx context.Context, req *model.ReturnRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ReturnRequest, error)
	UpdateTx(tx *gorm.DB, req *model.ReturnRequest) error
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.ReturnRequest, error)
	FindActiveByOriginalTransfer(ctx context.Context, originalTransferID uuid.UUID) (*model.ReturnRequest, error)
	DB() *gorm.DB
}

type returnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) DB() *gorm.DB { return r.db }

func (r *returnRepository) Create(ctx context.Context, req *model.ReturnRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *returnRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	err := r.db.WithContext(ctx).
		Preload("SourceLocation").
		Preload("DestinationLocation").
		Preload("OriginalTransfer").
		First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *returnRepository) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	err := tx.First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *returnRepository) UpdateTx(tx *gorm.DB, req *model.ReturnRequest) error {
	return tx.Save(req).Error
}

func (r *returnRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.ReturnRequest, error) {
	var reqs []model.ReturnRequest
	err := r.db.WithContext(ctx).
		Preload("SourceLocation").
		Preload("DestinationLocation").
		Where("requester_id = ?", requesterID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// FindActiveByOriginalTransfer returns a non-cancelled return already opened
// for the given transfer, if any. Used to reject duplicate returns.
func (r *returnRepository) FindActiveByOriginalTransfer(ctx context.Context, originalTransferID uuid.UUID) (*model.ReturnRequest, error) {
	var req model.ReturnRequest
	err := r.db.WithContext(ctx).
		Where("original_transfer_id = ? AND status <> ?", originalTransferID, model.ShipmentCancelled).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
