package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateTransferRequest struct {
	SourceLocationID   string  `json:"source_location_id"  validate:"required,uuid"`
	ReferenceCode      string  `json:"reference_code"      validate:"required"`
	Size               string  `json:"size"                validate:"required"`
	Quantity           int     `json:"quantity"            validate:"required,min=1"`
	Purpose            string  `json:"purpose"             validate:"required,oneof=exhibition sale"`
	PickupType         string  `json:"pickup_type"         validate:"required,oneof=self courier"`
	DestinationStorage string  `json:"destination_storage" validate:"required,oneof=warehouse display"`
	Notes              *string `json:"notes"`
}

type CreateReturnRequest struct {
	OriginalTransferID string  `json:"original_transfer_id" validate:"required,uuid"`
	Notes              *string `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ShipmentResponse struct {
	ID                    string  `json:"id"`
	RequesterID           string  `json:"requester_id"`
	SourceLocationID      string  `json:"source_location_id"`
	SourceLocationName    string  `json:"source_location_name,omitempty"`
	DestinationLocationID string  `json:"destination_location_id"`
	DestinationLocation   string  `json:"destination_location_name,omitempty"`
	ReferenceCode         string  `json:"reference_code"`
	Size                  string  `json:"size"`
	Quantity              int     `json:"quantity"`
	Purpose               string  `json:"purpose,omitempty"`
	PickupType            string  `json:"pickup_type,omitempty"`
	DestinationStorage    string  `json:"destination_storage,omitempty"`
	Status                string  `json:"status"`
	RequestedAt           string  `json:"requested_at"`
	AcceptedAt            *string `json:"accepted_at,omitempty"`
	PickedUpAt            *string `json:"picked_up_at,omitempty"`
	DeliveredAt           *string `json:"delivered_at,omitempty"`
	CancelledAt           *string `json:"cancelled_at,omitempty"`
	OriginalTransferID    string  `json:"original_transfer_id,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

// ShipmentStatusSummary counts a requester's shipments per status.
type ShipmentStatusSummary struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	InTransit int `json:"in_transit"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

type ShipmentListResponse struct {
	Data    []ShipmentResponse    `json:"data"`
	Summary ShipmentStatusSummary `json:"summary"`
}
