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

type ExpenseService interface {
	Create(ctx context.Context, userID, locationID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	Today(ctx context.Context, userID uuid.UUID) (*dto.ExpenseListResponse, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, userID, locationID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Msg: "must be positive"}
	}

	expense := model.Expense{
		UserID:           userID,
		LocationID:       locationID,
		Concept:          req.Concept,
		Amount:           req.Amount,
		ReceiptReference: req.ReceiptReference,
		Notes:            req.Notes,
	}
	if err := s.repo.Create(ctx, &expense); err != nil {
		return nil, err
	}
	return expenseToResponse(&expense), nil
}

func (s *expenseService) Today(ctx context.Context, userID uuid.UUID) (*dto.ExpenseListResponse, error) {
	expenses, err := s.repo.FindByUserAndDay(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	resp := &dto.ExpenseListResponse{
		Data:        make([]dto.ExpenseResponse, 0, len(expenses)),
		TotalAmount: decimal.Zero,
	}
	for _, e := range expenses {
		resp.Data = append(resp.Data, *expenseToResponse(&e))
		resp.TotalAmount = resp.TotalAmount.Add(e.Amount)
	}
	return resp, nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:               e.ID.String(),
		UserID:           e.UserID.String(),
		LocationID:       e.LocationID.String(),
		Concept:          e.Concept,
		Amount:           e.Amount,
		ReceiptReference: e.ReceiptReference,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
