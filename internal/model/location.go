package model

import (
	"time"

	"github.com/google/uuid"
)

// Location kinds.
const (
	LocationStore     = "store"
	LocationWarehouse = "warehouse"
)

// Location is a physical site holding inventory. Immutable once created
// except for the Active flag.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Kind      string    `gorm:"type:varchar(20);not null"` // "store" | "warehouse"
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
}
