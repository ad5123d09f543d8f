package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ReferenceCode string          `json:"reference_code" validate:"required"`
	Size          string          `json:"size"           validate:"required"`
	Quantity      int             `json:"quantity"       validate:"required,min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price"     validate:"required,gt=0"`
}

type PaymentSplitRequest struct {
	Method    string          `json:"method"    validate:"required,oneof=cash card transfer other"`
	Amount    decimal.Decimal `json:"amount"    validate:"required,gt=0"`
	Reference *string         `json:"reference" validate:"omitempty,max=120"`
}

type CreateSaleRequest struct {
	TotalAmount          decimal.Decimal       `json:"total_amount"          validate:"required,gt=0"`
	Items                []SaleItemRequest     `json:"items"                 validate:"required,min=1,dive"`
	Payments             []PaymentSplitRequest `json:"payments"              validate:"required,min=1,dive"`
	RequiresConfirmation bool                  `json:"requires_confirmation"`
	// ReceiptReference is the opaque key/URL produced by an external upload step.
	ReceiptReference *string `json:"receipt_reference"`
	Notes            *string `json:"notes"`
}

type ConfirmSaleRequest struct {
	SaleID    string  `json:"sale_id"   validate:"required,uuid"`
	Confirmed bool    `json:"confirmed"`
	Notes     *string `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ReferenceCode string          `json:"reference_code"`
	Size          string          `json:"size"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type PaymentSplitResponse struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference *string         `json:"reference,omitempty"`
}

type SaleResponse struct {
	ID                   string                 `json:"id"`
	SellerID             string                 `json:"seller_id"`
	LocationID           string                 `json:"location_id"`
	TotalAmount          decimal.Decimal        `json:"total_amount"`
	Status               string                 `json:"status"`
	RequiresConfirmation bool                   `json:"requires_confirmation"`
	ConfirmedAt          *string                `json:"confirmed_at,omitempty"`
	ReceiptReference     *string                `json:"receipt_reference,omitempty"`
	Notes                *string                `json:"notes,omitempty"`
	Items                []SaleItemResponse     `json:"items"`
	Payments             []PaymentSplitResponse `json:"payments"`
	CreatedAt            string                 `json:"created_at"`
}

type SaleListResponse struct {
	Data        []SaleResponse  `json:"data"`
	Total       int64           `json:"total"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
