package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vente is a sale bundling articles and/or services for a customer.
//
// ReductionType: "percent" | "amount"
// PaymentType:   "comptant" | "facilite"
// PaymentStatus: "pending" | "en_cours" | "paid"
//
// TotalCost is the post-reduction total as recomputed server-side; the
// client-sent figure is only cross-checked, never trusted.
type Vente struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Reduction     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ReductionType string          `gorm:"type:varchar(10);not null;default:'percent'"`
	PaymentType   string          `gorm:"type:varchar(10);not null"`
	PaymentStatus string          `gorm:"type:varchar(10);not null;default:'pending'"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Customer     *Customer      `gorm:"foreignKey:CustomerID"`
	Articles     []VenteArticle `gorm:"foreignKey:VenteID"`
	Services     []VenteService `gorm:"foreignKey:VenteID"`
	Installments []Installment  `gorm:"foreignKey:VenteID"`
}

// VenteArticle is a product line item on a sale. UnitPrice is frozen at sale
// time; TotalPrice = UnitPrice × Quantity.
type VenteArticle struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VenteID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// VenteService is a service line item on a sale (flat cost, quantity 1).
type VenteService struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VenteID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	PrestationID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description  *string

	Prestation *Prestation `gorm:"foreignKey:PrestationID"`
}

// Installment is an échéance: one amount/due-date pair of a deferred sale.
// The amounts of a vente's installments always sum to its TotalCost.
type Installment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VenteID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate        time.Time       `gorm:"index;not null"`
	Paid           bool            `gorm:"not null;default:false"`
	PaidAt         *time.Time
	ReminderSentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Vente *Vente `gorm:"foreignKey:VenteID"`
}
