package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

// DashboardService aggregates a seller's day: sales totals, shipment counts,
// discount decisions, unread return notices and expenses. Read-only.
type DashboardService interface {
	SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	saleRepo         repository.SaleRepository
	transferRepo     repository.TransferRepository
	discountRepo     repository.DiscountRepository
	notificationRepo repository.NotificationRepository
	expenseRepo      repository.ExpenseRepository
}

func NewDashboardService(
	saleRepo repository.SaleRepository,
	transferRepo repository.TransferRepository,
	discountRepo repository.DiscountRepository,
	notificationRepo repository.NotificationRepository,
	expenseRepo repository.ExpenseRepository,
) DashboardService {
	return &dashboardService{
		saleRepo:         saleRepo,
		transferRepo:     transferRepo,
		discountRepo:     discountRepo,
		notificationRepo: notificationRepo,
		expenseRepo:      expenseRepo,
	}
}

func (s *dashboardService) SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*dto.DashboardResponse, error) {
	now := time.Now()
	resp := &dto.DashboardResponse{}
	resp.Sales.ConfirmedAmount = decimal.Zero
	resp.Sales.PendingAmount = decimal.Zero
	resp.ExpensesToday = decimal.Zero

	sales, err := s.saleRepo.FindBySellerAndDay(ctx, sellerID, now)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		switch sale.Status {
		case model.SaleConfirmed:
			resp.Sales.ConfirmedCount++
			resp.Sales.ConfirmedAmount = resp.Sales.ConfirmedAmount.Add(sale.TotalAmount)
		case model.SalePendingConfirmation:
			resp.Sales.PendingCount++
			resp.Sales.PendingAmount = resp.Sales.PendingAmount.Add(sale.TotalAmount)
		}
	}

	transfers, err := s.transferRepo.FindByRequester(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	for _, t := range transfers {
		tallyShipmentStatus(&resp.Transfers, t.Status)
	}

	discounts, err := s.discountRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	for _, d := range discounts {
		switch d.Status {
		case model.DiscountPending:
			resp.Discounts.Pending++
		case model.DiscountApproved:
			resp.Discounts.Approved++
		case model.DiscountRejected:
			resp.Discounts.Rejected++
		}
	}

	unread, err := s.notificationRepo.CountUnreadForRequester(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	resp.UnreadReturnNotices = int(unread)

	expenses, err := s.expenseRepo.FindByUserAndDay(ctx, sellerID, now)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		resp.ExpensesToday = resp.ExpensesToday.Add(e.Amount)
	}

	return resp, nil
}
