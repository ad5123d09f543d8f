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
)

type TransferService interface {
	// CreateRequest opens a pending transfer. The destination is always the
	// requester's own location.
	CreateRequest(ctx context.Context, requesterID, requesterLocationID uuid.UUID, req dto.CreateTransferRequest) (*dto.ShipmentResponse, error)

	// Accept is the warehouse keeper's pick confirmation: pending -> accepted,
	// debiting the source in the same transaction. Insufficient stock aborts
	// with the status unchanged.
	Accept(ctx context.Context, keeperID, transferID uuid.UUID) (*dto.ShipmentResponse, error)

	// StartTransit moves accepted -> in_transit. Stamps the courier on
	// courier pickups. No ledger effect.
	StartTransit(ctx context.Context, actorID, transferID uuid.UUID) (*dto.ShipmentResponse, error)

	// Deliver moves in_transit -> delivered and credits the destination.
	Deliver(ctx context.Context, actorID, transferID uuid.UUID) (*dto.ShipmentResponse, error)

	// Cancel is legal from pending (no ledger effect) and accepted (credits
	// the already-debited quantity back to the source).
	Cancel(ctx context.Context, actorID, transferID uuid.UUID) (*dto.ShipmentResponse, error)

	MyRequests(ctx context.Context, requesterID uuid.UUID) (*dto.ShipmentListResponse, error)
	PendingForKeeper(ctx context.Context) (*dto.ShipmentListResponse, error)
	AssignedToCourier(ctx context.Context, courierID uuid.UUID) (*dto.ShipmentListResponse, error)
}

type transferService struct {
	repo         repository.TransferRepository
	ledger       LedgerService
	locationRepo repository.LocationRepository
}

func NewTransferService(repo repository.TransferRepository, ledger LedgerService, locationRepo repository.LocationRepository) TransferService {
	return &transferService{repo: repo, ledger: ledger, locationRepo: locationRepo}
}

func (s *transferService) CreateRequest(ctx context.Context, requesterID, requesterLocationID uuid.UUID, req dto.CreateTransferRequest) (*dto.ShipmentResponse, error) {
	sourceID, err := uuid.Parse(req.SourceLocationID)
	if err != nil {
		return nil, &ValidationError{Field: "source_location_id", Msg: "invalid uuid"}
	}
	if sourceID == requesterLocationID {
		return nil, &ValidationError{Field: "source_location_id", Msg: "source and destination are the same location"}
	}
	source, err := s.locationRepo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil || !source.Active {
		return nil, ErrNotFound
	}

	transfer := model.TransferRequest{
		RequesterID:           requesterID,
		SourceLocationID:      sourceID,
		DestinationLocationID: requesterLocationID,
		ReferenceCode:         req.ReferenceCode,
		Size:                  req.Size,
		Quantity:              req.Quantity,
		Purpose:               req.Purpose,
		PickupType:            req.PickupType,
		DestinationStorage:    req.DestinationStorage,
		Status:                model.ShipmentPending,
		RequestedAt:           time.Now(),
		Notes:                 req.Notes,
	}
	if err := s.repo.Create(ctx, &transfer); err != nil {
		return nil, err
	}

	log.Info().
		Str("transfer_id", transfer.ID.String()).
		Str("reference_code", req.ReferenceCode).
		Int("quantity", req.Quantity).
		Msg("transfer requested")
	return shipmentFromTransfer(&transfer), nil
}

func (s *transferService) Accept(ctx context.Context, keeperID, transferID uuid.UUID) (*dto.ShipmentResponse, error) {
	var transfer *model.TransferRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		transfer, err = s.repo.FindByIDTx(tx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return ErrNotFound
		}
		if transfer.Status != model.ShipmentPending {
			return &InvalidTransitionError{Entity: "transfer", From: transfer.Status, To: model.ShipmentAccepted}
		}

		// The pick debit and the status flip commit or fail together.
		ref := transfer.ID
		err = s.ledger.DebitTx(tx, transfer.ReferenceCode, transfer.SourceLocationID, transfer.Size,
			transfer.Quantity, model.MovementTransferPickup,
			fmt.Sprintf("transfer pick %s", transfer.ID), &ref)
		if err != nil {
			return err
		}

		now := time.Now()
		transfer.Status = model.ShipmentAccepted
		transfer.WarehouseKeeperID = &keeperID
		transfer.AcceptedAt = &now
		transfer.SourceDebited = true
		return s.repo.UpdateTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("transfer_id", transferID.String()).Msg("transfer accepted, source debited")
	return shipmentFromTransfer(transfer), nil
}

func (s *transferService) StartTransit(ctx context.Context, actorID, transferID uuid.UUID) (*dto.ShipmentResponse, error) {
	var transfer *model.TransferRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		transfer, err = s.repo.FindByIDTx(tx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return ErrNotFound
		}
		if transfer.Status != model.ShipmentAccepted {
			return &InvalidTransitionError{Entity: "transfer", From: transfer.Status, To: model.ShipmentInTransit}
		}

		now := time.Now()
		transfer.Status = model.ShipmentInTransit
		transfer.PickedUpAt = &now
		if transfer.PickupType == model.PickupCourier {
			transfer.CourierID = &actorID
		}
		return s.repo.UpdateTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}
	return shipmentFromTransfer(transfer), nil
}

func (s *transferService) Deliver(ctx context.Context, actorID, transferID uuid.UUID) (*dto.ShipmentResponse, error) {
	var transfer *model.TransferRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		transfer, err = s.repo.FindByIDTx(tx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return ErrNotFound
		}
		if transfer.Status != model.ShipmentInTransit {
			return &InvalidTransitionError{Entity: "transfer", From: transfer.Status, To: model.ShipmentDelivered}
		}

		ref := transfer.ID
		err = s.ledger.CreditTx(tx, transfer.ReferenceCode, transfer.DestinationLocationID, transfer.Size,
			transfer.Quantity, model.MovementTransferDelivery,
			fmt.Sprintf("transfer delivery %s", transfer.ID), &ref)
		if err != nil {
			return err
		}

		now := time.Now()
		transfer.Status = model.ShipmentDelivered
		transfer.DeliveredAt = &now
		return s.repo.UpdateTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("transfer_id", transferID.String()).Msg("transfer delivered, destination credited")
	return shipmentFromTransfer(transfer), nil
}

func (s *transferService) Cancel(ctx context.Context, actorID, transferID uuid.UUID) (*dto.ShipmentResponse, error) {
	var transfer *model.TransferRequest
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		transfer, err = s.repo.FindByIDTx(tx, transferID)
		if err != nil {
			return err
		}
		// Foreign transfers are invisible to the caller.
		if transfer == nil || transfer.RequesterID != actorID {
			return ErrNotFound
		}
		if transfer.Status != model.ShipmentPending && transfer.Status != model.ShipmentAccepted {
			return &InvalidTransitionError{Entity: "transfer", From: transfer.Status, To: model.ShipmentCancelled}
		}

		// An accepted transfer already debited the source; give it back.
		if transfer.SourceDebited {
			ref := transfer.ID
			err = s.ledger.CreditTx(tx, transfer.ReferenceCode, transfer.SourceLocationID, transfer.Size,
				transfer.Quantity, model.MovementTransferCancel,
				fmt.Sprintf("transfer cancel %s", transfer.ID), &ref)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		transfer.Status = model.ShipmentCancelled
		transfer.CancelledAt = &now
		return s.repo.UpdateTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("transfer_id", transferID.String()).Msg("transfer cancelled")
	return shipmentFromTransfer(transfer), nil
}

func (s *transferService) MyRequests(ctx context.Context, requesterID uuid.UUID) (*dto.ShipmentListResponse, error) {
	transfers, err := s.repo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ShipmentListResponse{Data: make([]dto.ShipmentResponse, 0, len(transfers))}
	for _, t := range transfers {
		resp.Data = append(resp.Data, *shipmentFromTransfer(&t))
		tallyShipmentStatus(&resp.Summary, t.Status)
	}
	return resp, nil
}

func (s *transferService) PendingForKeeper(ctx context.Context) (*dto.ShipmentListResponse, error) {
	transfers, err := s.repo.FindByStatus(ctx, model.ShipmentPending, model.ShipmentAccepted)
	if err != nil {
		return nil, err
	}
	resp := &dto.ShipmentListResponse{Data: make([]dto.ShipmentResponse, 0, len(transfers))}
	for _, t := range transfers {
		resp.Data = append(resp.Data, *shipmentFromTransfer(&t))
		tallyShipmentStatus(&resp.Summary, t.Status)
	}
	return resp, nil
}

func (s *transferService) AssignedToCourier(ctx context.Context, courierID uuid.UUID) (*dto.ShipmentListResponse, error) {
	transfers, err := s.repo.FindByCourier(ctx, courierID, model.ShipmentInTransit)
	if err != nil {
		return nil, err
	}
	resp := &dto.ShipmentListResponse{Data: make([]dto.ShipmentResponse, 0, len(transfers))}
	for _, t := range transfers {
		resp.Data = append(resp.Data, *shipmentFromTransfer(&t))
		tallyShipmentStatus(&resp.Summary, t.Status)
	}
	return resp, nil
}

func tallyShipmentStatus(summary *dto.ShipmentStatusSummary, status string) {
	switch status {
	case model.ShipmentPending:
		summary.Pending++
	case model.ShipmentAccepted:
		summary.Accepted++
	case model.ShipmentInTransit:
		summary.InTransit++
	case model.ShipmentDelivered:
		summary.Delivered++
	case model.ShipmentCancelled:
		summary.Cancelled++
	}
}

func formatShipmentTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02T15:04:05Z")
	return &s
}

func shipmentFromTransfer(t *model.TransferRequest) *dto.ShipmentResponse {
	resp := &dto.ShipmentResponse{
		ID:                    t.ID.String(),
		RequesterID:           t.RequesterID.String(),
		SourceLocationID:      t.SourceLocationID.String(),
		DestinationLocationID: t.DestinationLocationID.String(),
		ReferenceCode:         t.ReferenceCode,
		Size:                  t.Size,
		Quantity:              t.Quantity,
		Purpose:               t.Purpose,
		PickupType:            t.PickupType,
		DestinationStorage:    t.DestinationStorage,
		Status:                t.Status,
		RequestedAt:           t.RequestedAt.Format("2006-01-02T15:04:05Z"),
		AcceptedAt:            formatShipmentTime(t.AcceptedAt),
		PickedUpAt:            formatShipmentTime(t.PickedUpAt),
		DeliveredAt:           formatShipmentTime(t.DeliveredAt),
		CancelledAt:           formatShipmentTime(t.CancelledAt),
		Notes:                 t.Notes,
	}
	if t.SourceLocation != nil {
		resp.SourceLocationName = t.SourceLocation.Name
	}
	if t.DestinationLocation != nil {
		resp.DestinationLocation = t.DestinationLocation.Name
	}
	return resp
}
