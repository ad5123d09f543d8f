package dto

import "github.com/shopspring/decimal"

type RequestDiscountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason" validate:"required,min=5"`
}

type ReviewDiscountRequest struct {
	RequestID string  `json:"request_id" validate:"required,uuid"`
	Approve   bool    `json:"approve"`
	Comments  *string `json:"comments"`
}

type DiscountResponse struct {
	ID              string          `json:"id"`
	SellerID        string          `json:"seller_id"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	AdministratorID *string         `json:"administrator_id,omitempty"`
	ReviewedAt      *string         `json:"reviewed_at,omitempty"`
	Comments        *string         `json:"comments,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type DiscountListResponse struct {
	Data    []DiscountResponse `json:"data"`
	Summary struct {
		Pending             int             `json:"pending"`
		Approved            int             `json:"approved"`
		Rejected            int             `json:"rejected"`
		TotalAmountApproved decimal.Decimal `json:"total_amount_approved"`
	} `json:"summary"`
}
