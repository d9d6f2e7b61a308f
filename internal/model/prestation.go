package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prestation is a workshop service (diagnostic, pose traceur, vidange, …),
// optionally tied to the customer and vehicle it was performed on.
type Prestation struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceType string          `gorm:"index;not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description *string
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	CarID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Car      *Car      `gorm:"foreignKey:CarID"`
}
