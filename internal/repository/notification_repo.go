package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/model"
)

type NotificationRepository interface {
	CreateTx(tx *gorm.DB, n *model.ReturnNotification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnNotification, error)
	Update(ctx context.Context, n *model.ReturnNotification) error
	FindForRequester(ctx context.Context, requesterID uuid.UUID) ([]model.ReturnNotification, error)
	CountUnreadForRequester(ctx context.Context, requesterID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateTx(tx *gorm.DB, n *model.ReturnNotification) error {
	return tx.Create(n).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReturnNotification, error) {
	var n model.ReturnNotification
	err := r.db.WithContext(ctx).
		Preload("TransferRequest").
		First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.ReturnNotification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// FindForRequester joins through the original transfer so a seller only sees
// notices about transfers they themselves requested.
func (r *notificationRepository) FindForRequester(ctx context.Context, requesterID uuid.UUID) ([]model.ReturnNotification, error) {
	var ns []model.ReturnNotification
	err := r.db.WithContext(ctx).
		Preload("TransferRequest").
		Joins("JOIN transfer_requests ON transfer_requests.id = return_notifications.transfer_request_id").
		Where("transfer_requests.requester_id = ?", requesterID).
		Order("return_notifications.returned_at DESC").
		Find(&ns).Error
	return ns, err
}

func (r *notificationRepository) CountUnreadForRequester(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ReturnNotification{}).
		Joins("JOIN transfer_requests ON transfer_requests.id = return_notifications.transfer_request_id").
		Where("transfer_requests.requester_id = ? AND return_notifications.read_by_requester = false", requesterID).
		Count(&count).Error
	return count, err
}
