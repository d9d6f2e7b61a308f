package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a client of the dealership. CIN is the national identity card
// number and doubles as the business key.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fname       string    `gorm:"not null"`
	Lname       string    `gorm:"index;not null"`
	CIN         string    `gorm:"uniqueIndex;not null;column:cin"`
	PhoneNumber string    `gorm:"not null"`
	Email       *string
	Address     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Cars []Car `gorm:"foreignKey:CustomerID"`
}
