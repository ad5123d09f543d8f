package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubInventoryRepo, *stubMovementRepo) {
	invRepo := newStubInventoryRepo()
	movRepo := &stubMovementRepo{}
	ledger := service.NewLedgerService(invRepo, movRepo, newStubLocationRepo(), nil)
	saleRepo := newStubSaleRepo()
	svc := service.NewSaleService(saleRepo, ledger, nil)
	return svc, saleRepo, invRepo, movRepo
}

func saleRequest(total float64, items []dto.SaleItemRequest, payments []dto.PaymentSplitRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		TotalAmount: decimal.NewFromFloat(total),
		Items:       items,
		Payments:    payments,
	}
}

func TestCreateSale_ImmediateDebitsStock(t *testing.T) {
	svc, _, invRepo, movRepo := buildSaleSvc()
	loc := uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)
	invRepo.seed("SKU-B", loc, "41", 10, 0)

	resp, err := svc.CreateSale(context.Background(), uuid.New(), loc, saleRequest(500,
		[]dto.SaleItemRequest{
			{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)},
			{ReferenceCode: "SKU-B", Size: "41", Quantity: 2, UnitPrice: decimal.NewFromFloat(100)},
		},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(500)}},
	))
	require.NoError(t, err)

	assert.Equal(t, model.SaleConfirmed, resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
	assert.Equal(t, 7, invRepo.stock("SKU-A", loc, "40"))
	assert.Equal(t, 8, invRepo.stock("SKU-B", loc, "41"))
	// One movement per item, both linked to the sale.
	saleMovs := movRepo.byKind(model.MovementSale)
	require.Len(t, saleMovs, 2)
	for _, m := range saleMovs {
		assert.Equal(t, resp.ID, m.ReferenceID.String())
	}
}

func TestCreateSale_InsufficientItemFailsWholeSale(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	loc := uuid.New()
	invRepo.seed("SKU-A", loc, "40", 2, 0) // wants 3, has 2
	invRepo.seed("SKU-B", loc, "41", 10, 0)

	_, err := svc.CreateSale(context.Background(), uuid.New(), loc, saleRequest(500,
		[]dto.SaleItemRequest{
			{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)},
			{ReferenceCode: "SKU-B", Size: "41", Quantity: 2, UnitPrice: decimal.NewFromFloat(100)},
		},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(500)}},
	))

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "SKU-A", insufficient.ReferenceCode)
}

func TestCreateSale_PaymentMismatch(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	loc := uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)

	// Underpaid by more than a cent.
	_, err := svc.CreateSale(context.Background(), uuid.New(), loc, saleRequest(300,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(299.98)}},
	))
	var mismatch *service.PaymentMismatchError
	require.ErrorAs(t, err, &mismatch)

	// Overpaid by more than a cent fails too.
	_, err = svc.CreateSale(context.Background(), uuid.New(), loc, saleRequest(300,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(300.02)}},
	))
	require.ErrorAs(t, err, &mismatch)

	// Exactly one cent off is within tolerance.
	_, err = svc.CreateSale(context.Background(), uuid.New(), loc, saleRequest(300,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(299.99)}},
	))
	assert.NoError(t, err)
}

func TestCreateSale_SplitPayments(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	loc := uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)

	resp, err := svc.CreateSale(context.Background(), uuid.New(), loc, saleRequest(300,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{
			{Method: "cash", Amount: decimal.NewFromFloat(120)},
			{Method: "card", Amount: decimal.NewFromFloat(180)},
		},
	))
	require.NoError(t, err)
	assert.Len(t, resp.Payments, 2)
}

func TestCreateSale_DeferredLeavesLedgerUntouched(t *testing.T) {
	svc, _, invRepo, movRepo := buildSaleSvc()
	loc := uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)

	req := saleRequest(200,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 2, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{{Method: "transfer", Amount: decimal.NewFromFloat(200)}},
	)
	req.RequiresConfirmation = true

	resp, err := svc.CreateSale(context.Background(), uuid.New(), loc, req)
	require.NoError(t, err)

	assert.Equal(t, model.SalePendingConfirmation, resp.Status)
	assert.Nil(t, resp.ConfirmedAt)
	assert.Equal(t, 10, invRepo.stock("SKU-A", loc, "40"))
	assert.Empty(t, movRepo.movements)
}

func createDeferredSale(t *testing.T, svc service.SaleService, sellerID, loc uuid.UUID) string {
	t.Helper()
	req := saleRequest(200,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 2, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(200)}},
	)
	req.RequiresConfirmation = true
	resp, err := svc.CreateSale(context.Background(), sellerID, loc, req)
	require.NoError(t, err)
	return resp.ID
}

func TestConfirmSale_DebitsOnConfirm(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	sellerID, loc := uuid.New(), uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)
	saleID := createDeferredSale(t, svc, sellerID, loc)

	resp, err := svc.ConfirmSale(context.Background(), sellerID, dto.ConfirmSaleRequest{
		SaleID:    saleID,
		Confirmed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, model.SaleConfirmed, resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
	assert.Equal(t, 8, invRepo.stock("SKU-A", loc, "40"))
}

func TestConfirmSale_RejectNeverTouchesLedger(t *testing.T) {
	svc, _, invRepo, movRepo := buildSaleSvc()
	sellerID, loc := uuid.New(), uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)
	saleID := createDeferredSale(t, svc, sellerID, loc)

	resp, err := svc.ConfirmSale(context.Background(), sellerID, dto.ConfirmSaleRequest{
		SaleID:    saleID,
		Confirmed: false,
	})
	require.NoError(t, err)

	assert.Equal(t, model.SaleRejected, resp.Status)
	assert.Equal(t, 10, invRepo.stock("SKU-A", loc, "40"))
	assert.Empty(t, movRepo.movements)
}

func TestConfirmSale_Terminal(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	sellerID, loc := uuid.New(), uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)
	saleID := createDeferredSale(t, svc, sellerID, loc)

	_, err := svc.ConfirmSale(context.Background(), sellerID, dto.ConfirmSaleRequest{SaleID: saleID, Confirmed: true})
	require.NoError(t, err)

	_, err = svc.ConfirmSale(context.Background(), sellerID, dto.ConfirmSaleRequest{SaleID: saleID, Confirmed: false})
	var invalid *service.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, model.SaleConfirmed, invalid.From)
}

func TestConfirmSale_ForeignSellerLooksMissing(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	sellerID, loc := uuid.New(), uuid.New()
	invRepo.seed("SKU-A", loc, "40", 10, 0)
	saleID := createDeferredSale(t, svc, sellerID, loc)

	_, err := svc.ConfirmSale(context.Background(), uuid.New(), dto.ConfirmSaleRequest{
		SaleID:    saleID,
		Confirmed: true,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTodaySales_SumsOnlyConfirmed(t *testing.T) {
	svc, _, invRepo, _ := buildSaleSvc()
	sellerID, loc := uuid.New(), uuid.New()
	invRepo.seed("SKU-A", loc, "40", 20, 0)

	_, err := svc.CreateSale(context.Background(), sellerID, loc, saleRequest(300,
		[]dto.SaleItemRequest{{ReferenceCode: "SKU-A", Size: "40", Quantity: 3, UnitPrice: decimal.NewFromFloat(100)}},
		[]dto.PaymentSplitRequest{{Method: "cash", Amount: decimal.NewFromFloat(300)}},
	))
	require.NoError(t, err)
	createDeferredSale(t, svc, sellerID, loc) // pending, excluded from the sum

	list, err := svc.TodaySales(context.Background(), sellerID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, "300", list.TotalAmount.String())
}
