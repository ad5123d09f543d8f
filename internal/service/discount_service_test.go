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

func buildDiscountSvc() (service.DiscountService, *stubDiscountRepo) {
	repo := newStubDiscountRepo()
	return service.NewDiscountService(repo, decimal.NewFromInt(5000)), repo
}

func TestRequestDiscount_AtCap(t *testing.T) {
	svc, _ := buildDiscountSvc()

	resp, err := svc.Request(context.Background(), uuid.New(), dto.RequestDiscountRequest{
		Amount: decimal.NewFromInt(5000),
		Reason: "loyal customer, second pair",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DiscountPending, resp.Status)
}

func TestRequestDiscount_OverCap(t *testing.T) {
	svc, _ := buildDiscountSvc()

	_, err := svc.Request(context.Background(), uuid.New(), dto.RequestDiscountRequest{
		Amount: decimal.NewFromFloat(5000.01),
		Reason: "loyal customer, second pair",
	})
	var validation *service.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestRequestDiscount_NonPositive(t *testing.T) {
	svc, _ := buildDiscountSvc()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.Request(context.Background(), uuid.New(), dto.RequestDiscountRequest{
			Amount: amount,
			Reason: "should not pass",
		})
		var validation *service.ValidationError
		require.ErrorAs(t, err, &validation)
	}
}

func TestReviewDiscount_ApproveStampsReviewer(t *testing.T) {
	svc, _ := buildDiscountSvc()
	sellerID, adminID := uuid.New(), uuid.New()

	created, err := svc.Request(context.Background(), sellerID, dto.RequestDiscountRequest{
		Amount: decimal.NewFromInt(1200),
		Reason: "display model scuff",
	})
	require.NoError(t, err)

	comment := "approved, photograph the scuff"
	resp, err := svc.Review(context.Background(), adminID, dto.ReviewDiscountRequest{
		RequestID: created.ID,
		Approve:   true,
		Comments:  &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, model.DiscountApproved, resp.Status)
	require.NotNil(t, resp.AdministratorID)
	assert.Equal(t, adminID.String(), *resp.AdministratorID)
	assert.NotNil(t, resp.ReviewedAt)
	assert.Equal(t, comment, *resp.Comments)
}

func TestReviewDiscount_Terminal(t *testing.T) {
	svc, _ := buildDiscountSvc()
	adminID := uuid.New()

	created, err := svc.Request(context.Background(), uuid.New(), dto.RequestDiscountRequest{
		Amount: decimal.NewFromInt(800),
		Reason: "price match with competitor",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminID, dto.ReviewDiscountRequest{RequestID: created.ID, Approve: false})
	require.NoError(t, err)

	// Re-reviewing a settled request is refused, in either direction.
	_, err = svc.Review(context.Background(), adminID, dto.ReviewDiscountRequest{RequestID: created.ID, Approve: true})
	var invalid *service.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, model.DiscountRejected, invalid.From)
}

func TestReviewDiscount_Missing(t *testing.T) {
	svc, _ := buildDiscountSvc()

	_, err := svc.Review(context.Background(), uuid.New(), dto.ReviewDiscountRequest{
		RequestID: uuid.New().String(),
		Approve:   true,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestMyDiscounts_SummaryCountsApprovedAmount(t *testing.T) {
	svc, _ := buildDiscountSvc()
	sellerID, adminID := uuid.New(), uuid.New()

	first, err := svc.Request(context.Background(), sellerID, dto.RequestDiscountRequest{
		Amount: decimal.NewFromInt(1000),
		Reason: "floor sample discount",
	})
	require.NoError(t, err)
	second, err := svc.Request(context.Background(), sellerID, dto.RequestDiscountRequest{
		Amount: decimal.NewFromInt(2000),
		Reason: "bulk purchase of three pairs",
	})
	require.NoError(t, err)
	_, err = svc.Request(context.Background(), sellerID, dto.RequestDiscountRequest{
		Amount: decimal.NewFromInt(500),
		Reason: "still waiting for review",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), adminID, dto.ReviewDiscountRequest{RequestID: first.ID, Approve: true})
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), adminID, dto.ReviewDiscountRequest{RequestID: second.ID, Approve: false})
	require.NoError(t, err)

	list, err := svc.MyRequests(context.Background(), sellerID)
	require.NoError(t, err)

	assert.Len(t, list.Data, 3)
	assert.Equal(t, 1, list.Summary.Pending)
	assert.Equal(t, 1, list.Summary.Approved)
	assert.Equal(t, 1, list.Summary.Rejected)
	assert.Equal(t, "1000", list.Summary.TotalAmountApproved.String())
}
