package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Concept          string          `json:"concept" validate:"required,min=3"`
	Amount           decimal.Decimal `json:"amount"  validate:"required"`
	ReceiptReference *string         `json:"receipt_reference"`
	Notes            *string         `json:"notes"`
}

type ExpenseResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	LocationID       string          `json:"location_id"`
	Concept          string          `json:"concept"`
	Amount           decimal.Decimal `json:"amount"`
	ReceiptReference *string         `json:"receipt_reference,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

type ExpenseListResponse struct {
	Data        []ExpenseResponse `json:"data"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}
