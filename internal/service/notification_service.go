package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

type NotificationService interface {
	// List returns the caller's return notices, newest first, with the
	// unread count.
	List(ctx context.Context, requesterID uuid.UUID) (*dto.ReturnNotificationListResponse, error)

	// MarkRead flags a notice as read. Idempotent: re-marking a read notice
	// succeeds without effect. Foreign and missing notices are ErrNotFound.
	MarkRead(ctx context.Context, requesterID, notificationID uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, requesterID uuid.UUID) (*dto.ReturnNotificationListResponse, error) {
	notifications, err := s.repo.FindForRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReturnNotificationListResponse{
		Data: make([]dto.ReturnNotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		item := dto.ReturnNotificationResponse{
			ID:                 n.ID.String(),
			TransferRequestID:  n.TransferRequestID.String(),
			ReturnedToLocation: n.ReturnedToLocation,
			ReturnedAt:         n.ReturnedAt.Format("2006-01-02T15:04:05Z"),
			Notes:              n.Notes,
			Read:               n.ReadByRequester,
		}
		if n.TransferRequest != nil {
			item.ReferenceCode = n.TransferRequest.ReferenceCode
			item.Size = n.TransferRequest.Size
			item.Quantity = n.TransferRequest.Quantity
		}
		resp.Data = append(resp.Data, item)
		if !n.ReadByRequester {
			resp.UnreadCount++
		}
	}
	return resp, nil
}

func (s *notificationService) MarkRead(ctx context.Context, requesterID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotFound
	}
	if n.TransferRequest == nil || n.TransferRequest.RequesterID != requesterID {
		return ErrNotFound
	}
	if n.ReadByRequester {
		return nil
	}
	n.ReadByRequester = true
	// Detach the preloaded transfer so Save touches only the notification row.
	saved := *n
	saved.TransferRequest = nil
	return s.repo.Update(ctx, &saved)
}
