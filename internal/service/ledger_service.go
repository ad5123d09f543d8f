package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

// CatalogResolver resolves a reference code against the external product
// catalog. Lookups are best-effort: a nil result means "no enrichment", never
// a failed stock operation.
type CatalogResolver interface {
	ResolveReference(ctx context.Context, referenceCode string) (*dto.CatalogInfo, error)
}

// LedgerService is the single gateway to stock quantities. Every debit and
// credit goes through it so that the movement audit trail stays complete and
// quantities can never go negative.
type LedgerService interface {
	// DebitTx atomically decrements stock within the caller's transaction and
	// records the movement. Returns InsufficientStockError when the row holds
	// less than qty.
	DebitTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int, kind string, reason string, refID *uuid.UUID) error

	// CreditTx atomically increments stock within the caller's transaction,
	// creating the inventory row if it does not exist, and records the movement.
	CreditTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int, kind string, reason string, refID *uuid.UUID) error

	Availability(ctx context.Context, referenceCode string, locationID uuid.UUID) (*dto.AvailabilityResponse, error)
	OtherLocations(ctx context.Context, referenceCode string, excludeLocationID uuid.UUID) (*dto.OtherLocationsResponse, error)

	AdjustStock(ctx context.Context, userID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockMovementResponse, error)
	ShiftDisplay(ctx context.Context, userID uuid.UUID, req dto.DisplayShiftRequest) error

	Movements(ctx context.Context, referenceCode string, locationID uuid.UUID, size string, limit int) (*dto.StockMovementListResponse, error)

	DB() *gorm.DB
}

type ledgerService struct {
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.StockMovementRepository
	locationRepo  repository.LocationRepository
	catalog       CatalogResolver
}

func NewLedgerService(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	locationRepo repository.LocationRepository,
	catalog CatalogResolver,
) LedgerService {
	return &ledgerService{
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		locationRepo:  locationRepo,
		catalog:       catalog,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ledgerService) DB() *gorm.DB { return s.inventoryRepo.DB() }

func (s *ledgerService) DebitTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int, kind string, reason string, refID *uuid.UUID) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantity", Msg: "must be positive"}
	}

	// Snapshot before the conditional update so the movement row carries
	// before/after quantities.
	before, err := s.inventoryRepo.FindTx(tx, referenceCode, locationID, size)
	if err != nil {
		return err
	}
	available := 0
	if before != nil {
		available = before.StockQuantity
	}

	rows, err := s.inventoryRepo.DebitStockTx(tx, referenceCode, locationID, size, qty)
	if err != nil {
		return err
	}
	if rows == 0 {
		return &InsufficientStockError{
			ReferenceCode: referenceCode,
			Size:          size,
			Requested:     qty,
			Available:     available,
		}
	}

	mov := &model.StockMovement{
		ReferenceCode: referenceCode,
		LocationID:    locationID,
		Size:          size,
		Kind:          kind,
		Quantity:      -qty,
		StockBefore:   available,
		StockAfter:    available - qty,
		Reason:        reason,
		ReferenceID:   refID,
	}
	return s.movementRepo.CreateTx(tx, mov)
}

func (s *ledgerService) CreditTx(tx *gorm.DB, referenceCode string, locationID uuid.UUID, size string, qty int, kind string, reason string, refID *uuid.UUID) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantity", Msg: "must be positive"}
	}

	before, err := s.inventoryRepo.FindTx(tx, referenceCode, locationID, size)
	if err != nil {
		return err
	}
	prev := 0
	if before != nil {
		prev = before.StockQuantity
	}

	if err := s.inventoryRepo.CreditStockTx(tx, referenceCode, locationID, size, qty); err != nil {
		return err
	}

	mov := &model.StockMovement{
		ReferenceCode: referenceCode,
		LocationID:    locationID,
		Size:          size,
		Kind:          kind,
		Quantity:      qty,
		StockBefore:   prev,
		StockAfter:    prev + qty,
		Reason:        reason,
		ReferenceID:   refID,
	}
	return s.movementRepo.CreateTx(tx, mov)
}

func (s *ledgerService) Availability(ctx context.Context, referenceCode string, locationID uuid.UUID) (*dto.AvailabilityResponse, error) {
	recs, err := s.inventoryRepo.FindByReferenceAndLocation(ctx, referenceCode, locationID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		ReferenceCode: referenceCode,
		LocationID:    locationID.String(),
		Sizes:         make([]dto.SizeAvailability, 0, len(recs)),
	}

	if loc, err := s.locationRepo.FindByID(ctx, locationID); err == nil && loc != nil {
		resp.LocationName = loc.Name
	}

	for _, rec := range recs {
		resp.Sizes = append(resp.Sizes, dto.SizeAvailability{
			Size:            rec.Size,
			StockQuantity:   rec.StockQuantity,
			DisplayQuantity: rec.DisplayQuantity,
			UnitPrice:       rec.UnitPrice,
			BoxPrice:        rec.BoxPrice,
			BelowMinimum:    rec.StockQuantity < rec.MinimumStock,
		})
	}

	resp.Catalog = s.resolveCatalog(ctx, referenceCode)
	return resp, nil
}

func (s *ledgerService) OtherLocations(ctx context.Context, referenceCode string, excludeLocationID uuid.UUID) (*dto.OtherLocationsResponse, error) {
	recs, err := s.inventoryRepo.FindByReferenceExcluding(ctx, referenceCode, excludeLocationID)
	if err != nil {
		return nil, err
	}

	// Group rows by location preserving query order.
	byLocation := make(map[uuid.UUID]*dto.AvailabilityResponse)
	order := make([]uuid.UUID, 0)
	for _, rec := range recs {
		entry, ok := byLocation[rec.LocationID]
		if !ok {
			entry = &dto.AvailabilityResponse{
				ReferenceCode: referenceCode,
				LocationID:    rec.LocationID.String(),
			}
			if loc, err := s.locationRepo.FindByID(ctx, rec.LocationID); err == nil && loc != nil {
				entry.LocationName = loc.Name
			}
			byLocation[rec.LocationID] = entry
			order = append(order, rec.LocationID)
		}
		entry.Sizes = append(entry.Sizes, dto.SizeAvailability{
			Size:            rec.Size,
			StockQuantity:   rec.StockQuantity,
			DisplayQuantity: rec.DisplayQuantity,
			UnitPrice:       rec.UnitPrice,
			BoxPrice:        rec.BoxPrice,
			BelowMinimum:    rec.StockQuantity < rec.MinimumStock,
		})
	}

	resp := &dto.OtherLocationsResponse{
		ReferenceCode: referenceCode,
		Catalog:       s.resolveCatalog(ctx, referenceCode),
		Locations:     make([]dto.AvailabilityResponse, 0, len(order)),
	}
	for _, id := range order {
		resp.Locations = append(resp.Locations, *byLocation[id])
	}
	return resp, nil
}

// AdjustStock applies an administrator's manual correction. Negative deltas
// respect the non-negativity guard like any other debit.
func (s *ledgerService) AdjustStock(ctx context.Context, userID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, &ValidationError{Field: "location_id", Msg: "invalid uuid"}
	}
	if req.Delta == 0 {
		return nil, &ValidationError{Field: "delta", Msg: "must be non-zero"}
	}

	reason := fmt.Sprintf("manual adjustment by %s: %s", userID, req.Reason)

	var out dto.StockMovementResponse
	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		var err error
		if req.Delta > 0 {
			err = s.CreditTx(tx, req.ReferenceCode, locationID, req.Size, req.Delta, model.MovementManualAdjustment, reason, nil)
		} else {
			err = s.DebitTx(tx, req.ReferenceCode, locationID, req.Size, -req.Delta, model.MovementManualAdjustment, reason, nil)
		}
		if err != nil {
			return err
		}
		rec, err := s.inventoryRepo.FindTx(tx, req.ReferenceCode, locationID, req.Size)
		if err != nil {
			return err
		}
		after := 0
		if rec != nil {
			after = rec.StockQuantity
		}
		out = dto.StockMovementResponse{
			ReferenceCode: req.ReferenceCode,
			LocationID:    req.LocationID,
			Size:          req.Size,
			Kind:          model.MovementManualAdjustment,
			Quantity:      req.Delta,
			StockBefore:   after - req.Delta,
			StockAfter:    after,
			Reason:        req.Reason,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("reference_code", req.ReferenceCode).
		Str("location_id", req.LocationID).
		Str("size", req.Size).
		Int("delta", req.Delta).
		Msg("stock adjusted manually")
	return &out, nil
}

// ShiftDisplay moves units between the stockroom and the display shelf.
// Total on-hand quantity is unchanged, so no signed movement is recorded for
// the stock total; a display_shift movement documents the shuffle.
func (s *ledgerService) ShiftDisplay(ctx context.Context, userID uuid.UUID, req dto.DisplayShiftRequest) error {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return &ValidationError{Field: "location_id", Msg: "invalid uuid"}
	}

	return runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		before, err := s.inventoryRepo.FindTx(tx, req.ReferenceCode, locationID, req.Size)
		if err != nil {
			return err
		}
		if before == nil {
			return ErrNotFound
		}

		var rows int64
		if req.ToDisplay {
			rows, err = s.inventoryRepo.ShiftToDisplayTx(tx, req.ReferenceCode, locationID, req.Size, req.Quantity)
		} else {
			rows, err = s.inventoryRepo.ShiftToStockTx(tx, req.ReferenceCode, locationID, req.Size, req.Quantity)
		}
		if err != nil {
			return err
		}
		if rows == 0 {
			available := before.StockQuantity
			if !req.ToDisplay {
				available = before.DisplayQuantity
			}
			return &InsufficientStockError{
				ReferenceCode: req.ReferenceCode,
				Size:          req.Size,
				Requested:     req.Quantity,
				Available:     available,
			}
		}

		direction := "stock to display"
		delta := -req.Quantity
		if !req.ToDisplay {
			direction = "display to stock"
			delta = req.Quantity
		}
		mov := &model.StockMovement{
			ReferenceCode: req.ReferenceCode,
			LocationID:    locationID,
			Size:          req.Size,
			Kind:          model.MovementDisplayShift,
			Quantity:      delta,
			StockBefore:   before.StockQuantity,
			StockAfter:    before.StockQuantity + delta,
			Reason:        fmt.Sprintf("display shift (%s) by %s", direction, userID),
		}
		return s.movementRepo.CreateTx(tx, mov)
	})
}

func (s *ledgerService) Movements(ctx context.Context, referenceCode string, locationID uuid.UUID, size string, limit int) (*dto.StockMovementListResponse, error) {
	movements, err := s.movementRepo.FindByKey(ctx, referenceCode, locationID, size, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockMovementListResponse{
		Data:  make([]dto.StockMovementResponse, 0, len(movements)),
		Total: int64(len(movements)),
	}
	for _, m := range movements {
		resp.Data = append(resp.Data, dto.StockMovementResponse{
			ID:            m.ID.String(),
			ReferenceCode: m.ReferenceCode,
			LocationID:    m.LocationID.String(),
			Size:          m.Size,
			Kind:          m.Kind,
			Quantity:      m.Quantity,
			StockBefore:   m.StockBefore,
			StockAfter:    m.StockAfter,
			Reason:        m.Reason,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}

func (s *ledgerService) resolveCatalog(ctx context.Context, referenceCode string) *dto.CatalogInfo {
	if s.catalog == nil {
		return nil
	}
	info, err := s.catalog.ResolveReference(ctx, referenceCode)
	if err != nil {
		log.Warn().Err(err).Str("reference_code", referenceCode).Msg("catalog lookup failed")
		return nil
	}
	return info
}
