package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Investment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	InvestorID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	PaymentMethod  string          `gorm:"type:varchar(50);not null"`
	PaymentRef     *string         `gorm:"type:varchar(255);index"`
	RefundRef      *string         `gorm:"type:varchar(255)"`
	TransactionFee decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(50);not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Investor User    `gorm:"foreignKey:InvestorID"`
	Project  Project `gorm:"foreignKey:ProjectID"`
}
