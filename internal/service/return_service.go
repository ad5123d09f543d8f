package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
	"github.com/wallblue4/tustockya-backend/internal/worker"
)

type ReturnService interface {
	// CreateReturn opens a return of a delivered transfer. The original must
	// exist, belong to the caller and be delivered; all three failures are
	// reported as ErrNotFound so callers cannot probe foreign transfers.
	CreateReturn(ctx context.Context, requesterID uuid.UUID, req dto.CreateReturnRequest) (*dto.ShipmentResponse, error)

	Accept(ctx context.Context, keeperID, returnID uuid.UUID) (*dto.ShipmentResponse, error)
	StartTransit(ctx context.Context, actorID, returnID uuid.UUID) (*dto.ShipmentResponse, error)

	// Deliver credits the destination, records a ReturnNotification for the
	// original requester and enqueues the return-notice email.
	Deliver(ctx context.Context, actorID, returnID uuid.UUID) (*dto.ShipmentResponse, error)

	Cancel(ctx context.Context, actorID, returnID uuid.UUID) (*dto.ShipmentResponse, error)
	MyReturns(ctx context.Context, requesterID uuid.UUID) (*dto.ShipmentListResponse, error)
}

type returnService struct {
	repo             repository.ReturnRepository
	transferRepo     repository.TransferRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	locationRepo     repository.LocationRepository
	ledger           LedgerService
	dispatcher       *worker.Dispatcher
}

func NewReturnService(
	repo repository.ReturnRepository,
	transferRepo repository.TransferRepository,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	ledger LedgerService,
	dispatcher *worker.Dispatcher,
) ReturnService {
	return &returnService{
		repo:             repo,
		transferRepo:     transferRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		locationRepo:     locationRepo,
		ledger:           ledger,
		dispatcher:       dispatcher,
	}
}

func (s *returnService) CreateReturn(ctx context.Context, requesterID uuid.UUID, req dto.CreateReturnRequest) (*dto.ShipmentResponse, error) {
	originalID, err := uuid.Parse(req.OriginalTransferID)
	if err != nil {
		return nil, &ValidationError{Field: "original_transfer_id", Msg: "invalid uuid"}
	}

	original, err := s.transferRepo.FindByID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if original == nil || original.RequesterID != requesterID || original.Status != model.ShipmentDelivered {
		return nil, ErrNotFound
	}

	existing, err := s.repo.FindActiveByOriginalTransfer(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Field: "original_transfer_id", Msg: "a return for this transfer is already open"}
	}

	ret := model.ReturnRequest{
		OriginalTransferID:    originalID,
		RequesterID:           requesterID,
		SourceLocationID:      original.DestinationLocationID,
		DestinationLocationID: original.SourceLocationID,
		ReferenceCode:         original.ReferenceCode,
		Size:                  original.Size,
		Quantity:              original.Quantity,
		Status:                model.ShipmentPending,
		RequestedAt:           time.Now(),
		Notes:                 req.Notes,
	}
	if err := s.repo.Create(ctx, &ret); err != nil {
		return nil, err
	}

	log.Info().
		Str("return_id", ret.ID.String()).
		Str("original_transfer_id", originalID.String()).
		Msg("return requested")
	return shipmentFromReturn(&ret), nil
}

func (s *returnService) Accept(ctx context.Context, keeperID, returnID uuid.UUID) (*dto.ShipmentResponse, error) {
	var ret *model.ReturnRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		ret, err = s.repo.FindByIDTx(tx, returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrNotFound
		}
		if ret.Status != model.ShipmentPending {
			return &InvalidTransitionError{Entity: "return", From: ret.Status, To: model.ShipmentAccepted}
		}

		ref := ret.ID
		err = s.ledger.DebitTx(tx, ret.ReferenceCode, ret.SourceLocationID, ret.Size,
			ret.Quantity, model.MovementReturnPickup,
			fmt.Sprintf("return pick %s", ret.ID), &ref)
		if err != nil {
			return err
		}

		now := time.Now()
		ret.Status = model.ShipmentAccepted
		ret.WarehouseKeeperID = &keeperID
		ret.AcceptedAt = &now
		ret.SourceDebited = true
		return s.repo.UpdateTx(tx, ret)
	})
	if txErr != nil {
		return nil, txErr
	}
	return shipmentFromReturn(ret), nil
}

func (s *returnService) StartTransit(ctx context.Context, actorID, returnID uuid.UUID) (*dto.ShipmentResponse, error) {
	var ret *model.ReturnRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		ret, err = s.repo.FindByIDTx(tx, returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrNotFound
		}
		if ret.Status != model.ShipmentAccepted {
			return &InvalidTransitionError{Entity: "return", From: ret.Status, To: model.ShipmentInTransit}
		}

		now := time.Now()
		ret.Status = model.ShipmentInTransit
		ret.PickedUpAt = &now
		ret.CourierID = &actorID
		return s.repo.UpdateTx(tx, ret)
	})
	if txErr != nil {
		return nil, txErr
	}
	return shipmentFromReturn(ret), nil
}

func (s *returnService) Deliver(ctx context.Context, actorID, returnID uuid.UUID) (*dto.ShipmentResponse, error) {
	var ret *model.ReturnRequest
	var notification model.ReturnNotification

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		ret, err = s.repo.FindByIDTx(tx, returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return ErrNotFound
		}
		if ret.Status != model.ShipmentInTransit {
			return &InvalidTransitionError{Entity: "return", From: ret.Status, To: model.ShipmentDelivered}
		}

		ref := ret.ID
		err = s.ledger.CreditTx(tx, ret.ReferenceCode, ret.DestinationLocationID, ret.Size,
			ret.Quantity, model.MovementReturnDelivery,
			fmt.Sprintf("return delivery %s", ret.ID), &ref)
		if err != nil {
			return err
		}

		now := time.Now()
		ret.Status = model.ShipmentDelivered
		ret.DeliveredAt = &now
		if err := s.repo.UpdateTx(tx, ret); err != nil {
			return err
		}

		destinationName := ret.DestinationLocationID.String()
		if loc, err := s.locationRepo.FindByID(ctx, ret.DestinationLocationID); err == nil && loc != nil {
			destinationName = loc.Name
		}
		notification = model.ReturnNotification{
			TransferRequestID:  ret.OriginalTransferID,
			ReturnedToLocation: destinationName,
			ReturnedAt:         now,
			Notes:              ret.Notes,
		}
		return s.notificationRepo.CreateTx(tx, &notification)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enqueueReturnNotice(ctx, ret, &notification)

	log.Info().Str("return_id", returnID.String()).Msg("return delivered, destination credited")
	return shipmentFromReturn(ret), nil
}

func (s *returnService) Cancel(ctx context.Context, actorID, returnID uuid.UUID) (*dto.ShipmentResponse, error) {
	var ret *model.ReturnRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		ret, err = s.repo.FindByIDTx(tx, returnID)
		if err != nil {
			return err
		}
		if ret == nil || ret.RequesterID != actorID {
			return ErrNotFound
		}
		if ret.Status != model.ShipmentPending && ret.Status != model.ShipmentAccepted {
			return &InvalidTransitionError{Entity: "return", From: ret.Status, To: model.ShipmentCancelled}
		}

		if ret.SourceDebited {
			ref := ret.ID
			err = s.ledger.CreditTx(tx, ret.ReferenceCode, ret.SourceLocationID, ret.Size,
				ret.Quantity, model.MovementReturnCancel,
				fmt.Sprintf("return cancel %s", ret.ID), &ref)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		ret.Status = model.ShipmentCancelled
		ret.CancelledAt = &now
		return s.repo.UpdateTx(tx, ret)
	})
	if txErr != nil {
		return nil, txErr
	}
	return shipmentFromReturn(ret), nil
}

func (s *returnService) MyReturns(ctx context.Context, requesterID uuid.UUID) (*dto.ShipmentListResponse, error) {
	returns, err := s.repo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ShipmentListResponse{Data: make([]dto.ShipmentResponse, 0, len(returns))}
	for _, r := range returns {
		resp.Data = append(resp.Data, *shipmentFromReturn(&r))
		tallyShipmentStatus(&resp.Summary, r.Status)
	}
	return resp, nil
}

// enqueueReturnNotice emails the original requester that their transferred
// units came back. Best-effort: a dead queue never undoes a delivery.
func (s *returnService) enqueueReturnNotice(ctx context.Context, ret *model.ReturnRequest, n *model.ReturnNotification) {
	if s.dispatcher == nil {
		return
	}

	original, err := s.transferRepo.FindByID(ctx, ret.OriginalTransferID)
	if err != nil || original == nil {
		log.Warn().Str("return_id", ret.ID.String()).Msg("original transfer lookup failed for return notice")
		return
	}
	requester, err := s.userRepo.FindByID(ctx, original.RequesterID)
	if err != nil || requester == nil {
		log.Warn().Str("return_id", ret.ID.String()).Msg("requester lookup failed for return notice")
		return
	}

	payload := worker.ReturnNoticeJobPayload{
		ToEmail:            requester.Email,
		ReferenceCode:      ret.ReferenceCode,
		Size:               ret.Size,
		Quantity:           ret.Quantity,
		ReturnedToLocation: n.ReturnedToLocation,
		ReturnedAt:         n.ReturnedAt.Format("2006-01-02T15:04:05Z"),
	}
	if err := s.dispatcher.EnqueueReturnNotice(ctx, payload); err != nil {
		log.Warn().Err(err).Str("return_id", ret.ID.String()).Msg("failed to enqueue return notice")
	}
}

func shipmentFromReturn(r *model.ReturnRequest) *dto.ShipmentResponse {
	resp := &dto.ShipmentResponse{
		ID:                    r.ID.String(),
		RequesterID:           r.RequesterID.String(),
		SourceLocationID:      r.SourceLocationID.String(),
		DestinationLocationID: r.DestinationLocationID.String(),
		ReferenceCode:         r.ReferenceCode,
		Size:                  r.Size,
		Quantity:              r.Quantity,
		Status:                r.Status,
		RequestedAt:           r.RequestedAt.Format("2006-01-02T15:04:05Z"),
		AcceptedAt:            formatShipmentTime(r.AcceptedAt),
		PickedUpAt:            formatShipmentTime(r.PickedUpAt),
		DeliveredAt:           formatShipmentTime(r.DeliveredAt),
		CancelledAt:           formatShipmentTime(r.CancelledAt),
		OriginalTransferID:    r.OriginalTransferID.String(),
		Notes:                 r.Notes,
	}
	if r.SourceLocation != nil {
		resp.SourceLocationName = r.SourceLocation.Name
	}
	if r.DestinationLocation != nil {
		resp.DestinationLocation = r.DestinationLocation.Name
	}
	return resp
}
