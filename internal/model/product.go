package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a stocked article (parts, accessories, tracker hardware).
// SPrice is the sale price, BPrice the purchase price.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string          `gorm:"index;not null"`
	SPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;column:s_price"`
	BPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;column:b_price"`
	Stock      int             `gorm:"not null;default:0"`
	StockMin   int             `gorm:"not null;default:5"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// Category classifies products.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// StockMovement is the audit trail for every stock change.
// Type: "vente" | "ajustement" | "annulation"
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Quantity    int       `gorm:"not null"` // signed: negative on sale
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	RefID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
