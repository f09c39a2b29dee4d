package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Project struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Title           string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	FundingGoal     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	FundingRaised   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	FundingDeadline time.Time       `gorm:"not null;index"`
	Status          string          `gorm:"type:varchar(50);not null;index;default:'draft'"`
	MinInvestment   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	AccreditedOnly  bool            `gorm:"not null;default:false"`
	OwnerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Address         string          `gorm:"type:varchar(500)"`
	Latitude        float64
	Longitude       float64
	ImageKeys       string `gorm:"type:text;default:''"` // comma-separated storage keys
	ViewCount       int64  `gorm:"not null;default:0"`
	FavoriteCount   int64  `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Owner   User            `gorm:"foreignKey:OwnerID"`
	Updates []ProjectUpdate `gorm:"foreignKey:ProjectID"`
}

type ProjectUpdate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time
}
