package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles.
const (
	RoleSeller          = "seller"
	RoleWarehouseKeeper = "warehouse_keeper"
	RoleCourier         = "courier"
	RoleAdministrator   = "administrator"
)

// User stores system users with role-based access. Sellers and warehouse
// keepers are pinned to a location; couriers and administrators roam.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	LocationID   *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Location *Location `gorm:"foreignKey:LocationID"`
}
