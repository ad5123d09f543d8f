package dto

import "github.com/shopspring/decimal"

// SizeAvailability is one size row in an availability response.
type SizeAvailability struct {
	Size            string          `json:"size"`
	StockQuantity   int             `json:"stock_quantity"`
	DisplayQuantity int             `json:"display_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	BoxPrice        decimal.Decimal `json:"box_price"`
	BelowMinimum    bool            `json:"below_minimum"`
}

// CatalogInfo enriches availability responses with product reference data
// resolved by the external catalog service. Never gates a stock operation.
type CatalogInfo struct {
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	Color    string `json:"color,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type AvailabilityResponse struct {
	ReferenceCode string             `json:"reference_code"`
	LocationID    string             `json:"location_id"`
	LocationName  string             `json:"location_name,omitempty"`
	Sizes         []SizeAvailability `json:"sizes"`
	Catalog       *CatalogInfo       `json:"catalog,omitempty"`
}

// OtherLocationsResponse lists availability of a reference everywhere except
// the caller's own location ("find it elsewhere").
type OtherLocationsResponse struct {
	ReferenceCode string                 `json:"reference_code"`
	Catalog       *CatalogInfo           `json:"catalog,omitempty"`
	Locations     []AvailabilityResponse `json:"locations"`
}

type AdjustStockRequest struct {
	ReferenceCode string `json:"reference_code" validate:"required"`
	LocationID    string `json:"location_id"    validate:"required,uuid"`
	Size          string `json:"size"           validate:"required"`
	Delta         int    `json:"delta"          validate:"required"`
	Reason        string `json:"reason"         validate:"required,min=5"`
}

type DisplayShiftRequest struct {
	ReferenceCode string `json:"reference_code" validate:"required"`
	LocationID    string `json:"location_id"    validate:"required,uuid"`
	Size          string `json:"size"           validate:"required"`
	Quantity      int    `json:"quantity"       validate:"required,min=1"`
	// ToDisplay moves stock -> display when true, display -> stock when false.
	ToDisplay bool `json:"to_display"`
}

type StockMovementResponse struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"reference_code"`
	LocationID    string `json:"location_id"`
	Size          string `json:"size"`
	Kind          string `json:"kind"`
	Quantity      int    `json:"quantity"`
	StockBefore   int    `json:"stock_before"`
	StockAfter    int    `json:"stock_after"`
	Reason        string `json:"reason,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
}
