package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
	"github.com/wallblue4/tustockya-backend/internal/worker"
)

// paymentEpsilon is the tolerance for declared total vs the sum of payment
// splits, absorbing cent-level rounding of card terminals.
var paymentEpsilon = decimal.NewFromFloat(0.01)

type SaleService interface {
	// CreateSale registers a sale. Immediate sales debit every item's stock in
	// one all-or-nothing transaction; deferred sales (requires_confirmation)
	// persist as pending_confirmation without touching the ledger.
	CreateSale(ctx context.Context, sellerID, locationID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)

	// ConfirmSale settles a pending sale. confirmed=true debits stock and
	// stamps confirmed_at; confirmed=false marks it rejected. Both terminal.
	ConfirmSale(ctx context.Context, sellerID uuid.UUID, req dto.ConfirmSaleRequest) (*dto.SaleResponse, error)

	TodaySales(ctx context.Context, sellerID uuid.UUID) (*dto.SaleListResponse, error)
	PendingConfirmations(ctx context.Context, locationID uuid.UUID) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	ledger     LedgerService
	dispatcher *worker.Dispatcher
}

func NewSaleService(repo repository.SaleRepository, ledger LedgerService, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, ledger: ledger, dispatcher: dispatcher}
}

func (s *saleService) CreateSale(ctx context.Context, sellerID, locationID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// 1. Payment sufficiency: splits must equal the declared total within
	// the cent tolerance, in both directions.
	paid := decimal.Zero
	for _, p := range req.Payments {
		paid = paid.Add(p.Amount)
	}
	if paid.Sub(req.TotalAmount).Abs().GreaterThan(paymentEpsilon) {
		return nil, &PaymentMismatchError{Declared: req.TotalAmount, Paid: paid}
	}

	// 2. Build the sale model outside the transaction.
	sale := model.Sale{
		SellerID:             sellerID,
		LocationID:           locationID,
		TotalAmount:          req.TotalAmount,
		RequiresConfirmation: req.RequiresConfirmation,
		ReceiptReference:     req.ReceiptReference,
		Notes:                req.Notes,
	}
	for _, item := range req.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			ReferenceCode: item.ReferenceCode,
			Size:          item.Size,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	for _, p := range req.Payments {
		sale.Payments = append(sale.Payments, model.SalePayment{
			Method:    p.Method,
			Amount:    p.Amount,
			Reference: p.Reference,
		})
	}

	if req.RequiresConfirmation {
		sale.Status = model.SalePendingConfirmation
	} else {
		now := time.Now()
		sale.Status = model.SaleConfirmed
		sale.ConfirmedAt = &now
	}

	// 3. One transaction: persist the sale, and for immediate sales debit
	// every item. Any insufficient item aborts the whole sale.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}
		if sale.Status != model.SaleConfirmed {
			return nil
		}
		return s.debitItems(tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	if sale.Status == model.SaleConfirmed {
		s.enqueueReceipt(ctx, &sale)
	}

	log.Info().
		Str("sale_id", sale.ID.String()).
		Str("seller_id", sellerID.String()).
		Str("status", sale.Status).
		Str("total", sale.TotalAmount.String()).
		Msg("sale registered")
	return saleToResponse(&sale), nil
}

func (s *saleService) ConfirmSale(ctx context.Context, sellerID uuid.UUID, req dto.ConfirmSaleRequest) (*dto.SaleResponse, error) {
	saleID, err := uuid.Parse(req.SaleID)
	if err != nil {
		return nil, &ValidationError{Field: "sale_id", Msg: "invalid uuid"}
	}

	var sale *model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		sale, err = s.repo.FindByIDTx(tx, saleID)
		if err != nil {
			return err
		}
		// Missing and foreign sales are indistinguishable to the caller.
		if sale == nil || sale.SellerID != sellerID {
			return ErrNotFound
		}
		if sale.Status != model.SalePendingConfirmation {
			to := model.SaleConfirmed
			if !req.Confirmed {
				to = model.SaleRejected
			}
			return &InvalidTransitionError{Entity: "sale", From: sale.Status, To: to}
		}

		now := time.Now()
		if req.Confirmed {
			if err := s.debitItems(tx, sale); err != nil {
				return err
			}
			sale.Status = model.SaleConfirmed
			sale.ConfirmedAt = &now
		} else {
			sale.Status = model.SaleRejected
		}
		if req.Notes != nil {
			sale.Notes = req.Notes
		}
		return s.repo.UpdateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	if sale.Status == model.SaleConfirmed {
		s.enqueueReceipt(ctx, sale)
	}

	log.Info().
		Str("sale_id", sale.ID.String()).
		Str("status", sale.Status).
		Msg("sale confirmation settled")
	return saleToResponse(sale), nil
}

// debitItems debits stock for every item of the sale inside tx. One movement
// row per item, all tagged with the sale id.
func (s *saleService) debitItems(tx *gorm.DB, sale *model.Sale) error {
	saleRef := sale.ID
	for _, item := range sale.Items {
		err := s.ledger.DebitTx(tx, item.ReferenceCode, sale.LocationID, item.Size,
			item.Quantity, model.MovementSale, "sale", &saleRef)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *saleService) enqueueReceipt(ctx context.Context, sale *model.Sale) {
	if s.dispatcher == nil || sale.ReceiptReference != nil {
		return
	}
	payload := worker.ReceiptJobPayload{SaleID: sale.ID.String()}
	if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
		log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to enqueue receipt job")
	}
}

func (s *saleService) TodaySales(ctx context.Context, sellerID uuid.UUID) (*dto.SaleListResponse, error) {
	sales, err := s.repo.FindBySellerAndDay(ctx, sellerID, time.Now())
	if err != nil {
		return nil, err
	}
	return salesToList(sales), nil
}

func (s *saleService) PendingConfirmations(ctx context.Context, locationID uuid.UUID) (*dto.SaleListResponse, error) {
	sales, err := s.repo.FindPendingByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return salesToList(sales), nil
}

func salesToList(sales []model.Sale) *dto.SaleListResponse {
	resp := &dto.SaleListResponse{
		Data:        make([]dto.SaleResponse, 0, len(sales)),
		Total:       int64(len(sales)),
		TotalAmount: decimal.Zero,
	}
	for _, sale := range sales {
		resp.Data = append(resp.Data, *saleToResponse(&sale))
		if sale.Status == model.SaleConfirmed {
			resp.TotalAmount = resp.TotalAmount.Add(sale.TotalAmount)
		}
	}
	return resp
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			ReferenceCode: item.ReferenceCode,
			Size:          item.Size,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.Subtotal,
		})
	}
	payments := make([]dto.PaymentSplitResponse, 0, len(sale.Payments))
	for _, p := range sale.Payments {
		payments = append(payments, dto.PaymentSplitResponse{
			Method:    p.Method,
			Amount:    p.Amount,
			Reference: p.Reference,
		})
	}
	resp := &dto.SaleResponse{
		ID:                   sale.ID.String(),
		SellerID:             sale.SellerID.String(),
		LocationID:           sale.LocationID.String(),
		TotalAmount:          sale.TotalAmount,
		Status:               sale.Status,
		RequiresConfirmation: sale.RequiresConfirmation,
		ReceiptReference:     sale.ReceiptReference,
		Notes:                sale.Notes,
		Items:                items,
		Payments:             payments,
		CreatedAt:            sale.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if sale.ConfirmedAt != nil {
		ts := sale.ConfirmedAt.Format("2006-01-02T15:04:05Z")
		resp.ConfirmedAt = &ts
	}
	return resp
}
