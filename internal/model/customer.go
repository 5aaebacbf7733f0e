package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	CustomerTypeCustomer = "customer"
	CustomerTypePartner  = "partner"
)

// Customer is a buyer or partner. Name uniqueness is a business
// convention, not a constraint. IsActive=false is the soft-delete path;
// hard deletion also exists behind the confirmation guard.
type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	Phone    *string
	Email    *string
	Address  *string
	Notes    *string
	Type     string `gorm:"not null;default:'customer'"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
