package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// InvestmentStatus represents investment status
type InvestmentStatus string

const (
	InvestmentStatusPending   InvestmentStatus = "PENDING"
	InvestmentStatusCompleted InvestmentStatus = "COMPLETED"
	InvestmentStatusCancelled InvestmentStatus = "CANCELLED"
	InvestmentStatusRefunded  InvestmentStatus = "REFUNDED"
)

// PaymentMethod represents how an investment is funded
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodWire         PaymentMethod = "WIRE"
	PaymentMethodCrypto       PaymentMethod = "CRYPTO"
)

// Settles reports whether the method charges synchronously through the
// payment gateway. Bank, wire and crypto methods always start pending.
func (m PaymentMethod) Settles() bool {
	return m == PaymentMethodCard
}

// Investment represents a commitment of funds by a user to a project
type Investment struct {
	ID             uuid.UUID        `json:"id"`
	InvestorID     uuid.UUID        `json:"investorId"`
	ProjectID      uuid.UUID        `json:"projectId"`
	Amount         decimal.Decimal  `json:"amount"`
	PaymentMethod  PaymentMethod    `json:"paymentMethod"`
	PaymentRef     null.String      `json:"paymentRef,omitempty"`
	RefundRef      null.String      `json:"refundRef,omitempty"`
	TransactionFee decimal.Decimal  `json:"transactionFee"`
	Status         InvestmentStatus `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`

	// Joins
	Investor *User    `json:"investor,omitempty"`
	Project  *Project `json:"project,omitempty"`
}

// CreateInvestmentInput represents input for committing funds to a project
type CreateInvestmentInput struct {
	Amount         string `json:"amount" binding:"required"`
	PaymentMethod  string `json:"paymentMethod" binding:"required,oneof=card bank_transfer wire crypto"`
	PaymentDetails string `json:"paymentDetails"`
}
