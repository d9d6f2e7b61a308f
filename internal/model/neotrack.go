package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Neotrack is a GPS tracker device installed in a customer vehicle.
// Status: "inactif" | "actif" | "erreur"
type Neotrack struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IMEI       string    `gorm:"uniqueIndex;not null;column:imei"`
	SimNumber  *string
	DeviceType *string
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	CarID      *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(10);not null;default:'inactif'"`
	LastSeenAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Car      *Car      `gorm:"foreignKey:CarID"`
}
