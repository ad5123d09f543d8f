package model

import (
	"time"

	"github.com/google/uuid"
)

// ReturnNotification tells the original transfer's requester that their
// return reached its destination. Owned by that requester; marking it read
// is idempotent.
type ReturnNotification struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransferRequestID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ReturnedToLocation string    `gorm:"not null"`
	ReturnedAt         time.Time `gorm:"not null"`
	Notes              *string
	ReadByRequester    bool `gorm:"not null;default:false"`
	CreatedAt          time.Time

	TransferRequest *TransferRequest `gorm:"foreignKey:TransferRequestID"`
}
