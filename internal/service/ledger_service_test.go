package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

func buildLedger() (service.LedgerService, *stubInventoryRepo, *stubMovementRepo, *stubLocationRepo) {
	invRepo := newStubInventoryRepo()
	movRepo := &stubMovementRepo{}
	locRepo := newStubLocationRepo()
	return service.NewLedgerService(invRepo, movRepo, locRepo, nil), invRepo, movRepo, locRepo
}

func TestDebit_InsufficientStock(t *testing.T) {
	ledger, invRepo, movRepo, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-9", loc, "42", 3, 0)

	err := ledger.DebitTx(nil, "SKU-9", loc, "42", 5, model.MovementSale, "sale", nil)

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)

	// The row is untouched and no movement was written.
	assert.Equal(t, 3, invRepo.stock("SKU-9", loc, "42"))
	assert.Empty(t, movRepo.movements)
}

func TestDebit_MissingRow(t *testing.T) {
	ledger, _, _, _ := buildLedger()

	err := ledger.DebitTx(nil, "SKU-9", uuid.New(), "42", 1, model.MovementSale, "sale", nil)

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Available)
}

func TestDebit_RecordsMovement(t *testing.T) {
	ledger, invRepo, movRepo, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-1", loc, "40", 10, 0)
	saleID := uuid.New()

	err := ledger.DebitTx(nil, "SKU-1", loc, "40", 4, model.MovementSale, "sale", &saleID)
	require.NoError(t, err)

	assert.Equal(t, 6, invRepo.stock("SKU-1", loc, "40"))
	require.Len(t, movRepo.movements, 1)
	m := movRepo.movements[0]
	assert.Equal(t, -4, m.Quantity)
	assert.Equal(t, 10, m.StockBefore)
	assert.Equal(t, 6, m.StockAfter)
	assert.Equal(t, saleID, *m.ReferenceID)
}

func TestCredit_CreatesMissingRow(t *testing.T) {
	ledger, invRepo, movRepo, _ := buildLedger()
	loc := uuid.New()

	err := ledger.CreditTx(nil, "SKU-2", loc, "38", 6, model.MovementTransferDelivery, "transfer delivery", nil)
	require.NoError(t, err)

	assert.Equal(t, 6, invRepo.stock("SKU-2", loc, "38"))
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, 0, movRepo.movements[0].StockBefore)
	assert.Equal(t, 6, movRepo.movements[0].StockAfter)
}

// Ten goroutines each debiting 1 unit from a row holding 5: exactly five must
// succeed, the rest fail with InsufficientStockError, and the quantity never
// goes negative.
func TestDebit_ConcurrentNeverNegative(t *testing.T) {
	ledger, invRepo, _, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-9", loc, "42", 5, 0)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ledger.DebitTx(nil, "SKU-9", loc, "42", 1, model.MovementSale, "sale", nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var insufficient *service.InsufficientStockError
		assert.ErrorAs(t, err, &insufficient)
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, invRepo.stock("SKU-9", loc, "42"))
}

func TestAdjustStock_PositiveAndNegative(t *testing.T) {
	ledger, invRepo, movRepo, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-3", loc, "41", 10, 0)
	adminID := uuid.New()

	resp, err := ledger.AdjustStock(context.Background(), adminID, dto.AdjustStockRequest{
		ReferenceCode: "SKU-3",
		LocationID:    loc.String(),
		Size:          "41",
		Delta:         5,
		Reason:        "recount after audit",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.StockAfter)

	resp, err = ledger.AdjustStock(context.Background(), adminID, dto.AdjustStockRequest{
		ReferenceCode: "SKU-3",
		LocationID:    loc.String(),
		Size:          "41",
		Delta:         -3,
		Reason:        "damaged pair removed",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.StockAfter)
	assert.Equal(t, 12, invRepo.stock("SKU-3", loc, "41"))
	assert.Len(t, movRepo.byKind(model.MovementManualAdjustment), 2)
}

func TestAdjustStock_NegativeBeyondStock(t *testing.T) {
	ledger, invRepo, _, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-3", loc, "41", 2, 0)

	_, err := ledger.AdjustStock(context.Background(), uuid.New(), dto.AdjustStockRequest{
		ReferenceCode: "SKU-3",
		LocationID:    loc.String(),
		Size:          "41",
		Delta:         -10,
		Reason:        "bad correction",
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, invRepo.stock("SKU-3", loc, "41"))
}

func TestAdjustStock_ZeroDelta(t *testing.T) {
	ledger, _, _, _ := buildLedger()

	_, err := ledger.AdjustStock(context.Background(), uuid.New(), dto.AdjustStockRequest{
		ReferenceCode: "SKU-3",
		LocationID:    uuid.New().String(),
		Size:          "41",
		Delta:         0,
		Reason:        "nothing to do",
	})

	var validation *service.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestShiftDisplay_BothDirections(t *testing.T) {
	ledger, invRepo, movRepo, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-4", loc, "39", 8, 1)

	err := ledger.ShiftDisplay(context.Background(), uuid.New(), dto.DisplayShiftRequest{
		ReferenceCode: "SKU-4",
		LocationID:    loc.String(),
		Size:          "39",
		Quantity:      3,
		ToDisplay:     true,
	})
	require.NoError(t, err)

	rec, err := invRepo.Find(context.Background(), "SKU-4", loc, "39")
	require.NoError(t, err)
	assert.Equal(t, 5, rec.StockQuantity)
	assert.Equal(t, 4, rec.DisplayQuantity)

	err = ledger.ShiftDisplay(context.Background(), uuid.New(), dto.DisplayShiftRequest{
		ReferenceCode: "SKU-4",
		LocationID:    loc.String(),
		Size:          "39",
		Quantity:      2,
		ToDisplay:     false,
	})
	require.NoError(t, err)

	rec, _ = invRepo.Find(context.Background(), "SKU-4", loc, "39")
	assert.Equal(t, 7, rec.StockQuantity)
	assert.Equal(t, 2, rec.DisplayQuantity)
	assert.Len(t, movRepo.byKind(model.MovementDisplayShift), 2)
}

func TestShiftDisplay_MissingRow(t *testing.T) {
	ledger, _, _, _ := buildLedger()

	err := ledger.ShiftDisplay(context.Background(), uuid.New(), dto.DisplayShiftRequest{
		ReferenceCode: "SKU-404",
		LocationID:    uuid.New().String(),
		Size:          "39",
		Quantity:      1,
		ToDisplay:     true,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestShiftDisplay_InsufficientDisplay(t *testing.T) {
	ledger, invRepo, _, _ := buildLedger()
	loc := uuid.New()
	invRepo.seed("SKU-4", loc, "39", 8, 1)

	err := ledger.ShiftDisplay(context.Background(), uuid.New(), dto.DisplayShiftRequest{
		ReferenceCode: "SKU-4",
		LocationID:    loc.String(),
		Size:          "39",
		Quantity:      4, // only 1 on display
		ToDisplay:     false,
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Available)
}

func TestAvailability_GroupsSizes(t *testing.T) {
	ledger, invRepo, _, locRepo := buildLedger()
	loc := locRepo.seed("Store Centro", true)
	invRepo.seed("SKU-5", loc.ID, "40", 4, 1)
	invRepo.seed("SKU-5", loc.ID, "41", 0, 2)
	invRepo.seed("SKU-5", uuid.New(), "40", 9, 0) // other location, excluded

	resp, err := ledger.Availability(context.Background(), "SKU-5", loc.ID)
	require.NoError(t, err)

	assert.Equal(t, "Store Centro", resp.LocationName)
	assert.Len(t, resp.Sizes, 2)
}

func TestOtherLocations_ExcludesOwnAndEmpty(t *testing.T) {
	ledger, invRepo, _, locRepo := buildLedger()
	own := locRepo.seed("Store Centro", true)
	other := locRepo.seed("Warehouse Norte", true)
	invRepo.seed("SKU-6", own.ID, "40", 5, 0)
	invRepo.seed("SKU-6", other.ID, "40", 7, 0)
	invRepo.seed("SKU-6", locRepo.seed("Store Sur", true).ID, "40", 0, 0) // empty, excluded

	resp, err := ledger.OtherLocations(context.Background(), "SKU-6", own.ID)
	require.NoError(t, err)

	require.Len(t, resp.Locations, 1)
	assert.Equal(t, other.ID.String(), resp.Locations[0].LocationID)
	assert.Equal(t, 7, resp.Locations[0].Sizes[0].StockQuantity)
}
