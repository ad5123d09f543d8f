package dto

type ReturnNotificationResponse struct {
	ID                 string  `json:"id"`
	TransferRequestID  string  `json:"transfer_request_id"`
	ReferenceCode      string  `json:"reference_code,omitempty"`
	Size               string  `json:"size,omitempty"`
	Quantity           int     `json:"quantity,omitempty"`
	ReturnedToLocation string  `json:"returned_to_location"`
	ReturnedAt         string  `json:"returned_at"`
	Notes              *string `json:"notes,omitempty"`
	Read               bool    `json:"read"`
}

type ReturnNotificationListResponse struct {
	Data        []ReturnNotificationResponse `json:"data"`
	UnreadCount int                          `json:"unread_count"`
}
