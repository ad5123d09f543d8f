package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

type DiscountService interface {
	// Request opens a pending discount request. Amount must be positive and
	// at most the configured cap.
	Request(ctx context.Context, sellerID uuid.UUID, req dto.RequestDiscountRequest) (*dto.DiscountResponse, error)

	// Review settles a pending request. Approved and rejected are terminal;
	// reviewing a settled request fails with InvalidTransitionError.
	Review(ctx context.Context, adminID uuid.UUID, req dto.ReviewDiscountRequest) (*dto.DiscountResponse, error)

	MyRequests(ctx context.Context, sellerID uuid.UUID) (*dto.DiscountListResponse, error)
	Pending(ctx context.Context) (*dto.DiscountListResponse, error)
}

type discountService struct {
	repo repository.DiscountRepository
	cap  decimal.Decimal
}

func NewDiscountService(repo repository.DiscountRepository, cap decimal.Decimal) DiscountService {
	return &discountService{repo: repo, cap: cap}
}

func (s *discountService) Request(ctx context.Context, sellerID uuid.UUID, req dto.RequestDiscountRequest) (*dto.DiscountResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if req.Amount.GreaterThan(s.cap) {
		return nil, &ValidationError{Field: "amount", Msg: fmt.Sprintf("exceeds the maximum discount of %s", s.cap)}
	}

	request := model.DiscountRequest{
		SellerID: sellerID,
		Amount:   req.Amount,
		Reason:   req.Reason,
		Status:   model.DiscountPending,
	}
	if err := s.repo.Create(ctx, &request); err != nil {
		return nil, err
	}

	log.Info().
		Str("discount_id", request.ID.String()).
		Str("amount", req.Amount.String()).
		Msg("discount requested")
	return discountToResponse(&request), nil
}

func (s *discountService) Review(ctx context.Context, adminID uuid.UUID, req dto.ReviewDiscountRequest) (*dto.DiscountResponse, error) {
	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		return nil, &ValidationError{Field: "request_id", Msg: "invalid uuid"}
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}

	to := model.DiscountApproved
	if !req.Approve {
		to = model.DiscountRejected
	}
	if request.Status != model.DiscountPending {
		return nil, &InvalidTransitionError{Entity: "discount", From: request.Status, To: to}
	}

	now := time.Now()
	request.Status = to
	request.AdministratorID = &adminID
	request.ReviewedAt = &now
	request.Comments = req.Comments
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	log.Info().
		Str("discount_id", request.ID.String()).
		Str("status", request.Status).
		Msg("discount reviewed")
	return discountToResponse(request), nil
}

func (s *discountService) MyRequests(ctx context.Context, sellerID uuid.UUID) (*dto.DiscountListResponse, error) {
	requests, err := s.repo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return discountsToList(requests), nil
}

func (s *discountService) Pending(ctx context.Context) (*dto.DiscountListResponse, error) {
	requests, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return discountsToList(requests), nil
}

func discountsToList(requests []model.DiscountRequest) *dto.DiscountListResponse {
	resp := &dto.DiscountListResponse{Data: make([]dto.DiscountResponse, 0, len(requests))}
	resp.Summary.TotalAmountApproved = decimal.Zero
	for _, r := range requests {
		resp.Data = append(resp.Data, *discountToResponse(&r))
		switch r.Status {
		case model.DiscountPending:
			resp.Summary.Pending++
		case model.DiscountApproved:
			resp.Summary.Approved++
			resp.Summary.TotalAmountApproved = resp.Summary.TotalAmountApproved.Add(r.Amount)
		case model.DiscountRejected:
			resp.Summary.Rejected++
		}
	}
	return resp
}

func discountToResponse(r *model.DiscountRequest) *dto.DiscountResponse {
	resp := &dto.DiscountResponse{
		ID:        r.ID.String(),
		SellerID:  r.SellerID.String(),
		Amount:    r.Amount,
		Reason:    r.Reason,
		Status:    r.Status,
		Comments:  r.Comments,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if r.AdministratorID != nil {
		id := r.AdministratorID.String()
		resp.AdministratorID = &id
	}
	if r.ReviewedAt != nil {
		ts := r.ReviewedAt.Format("2006-01-02T15:04:05Z")
		resp.ReviewedAt = &ts
	}
	return resp
}
