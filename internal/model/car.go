package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Car is a customer vehicle. CustomerID is nil while the car is in stock or
// disassociated from its previous owner.
type Car struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BrandID    *uuid.UUID `gorm:"type:uuid;index"`
	ModelName  string     `gorm:"not null"`
	Plate      string     `gorm:"uniqueIndex;not null"`
	VIN        *string    `gorm:"column:vin"`
	Year       *int
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Brand    *CarBrand `gorm:"foreignKey:BrandID"`
	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// CarBrand groups the model names sold under one marque.
type CarBrand struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"uniqueIndex;not null"`
	ModelNames []string  `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
