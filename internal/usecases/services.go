package usecases

import (
	"context"
	"io"
	"time"

	"brickvest.backend/internal/infrastructure/gateway"
	"brickvest.backend/internal/infrastructure/geocode"
	"brickvest.backend/pkg/redis"
	"github.com/shopspring/decimal"
)

// PaymentGateway abstracts the external payment provider
type PaymentGateway interface {
	Charge(ctx context.Context, input gateway.ChargeInput) (*gateway.ChargeResult, error)
	Refund(ctx context.Context, chargeRef string, amount decimal.Decimal) (string, error)
}

// FileStorage abstracts the object store backing document and image uploads
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	SignedURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// EmailSender abstracts the transactional email provider
type EmailSender interface {
	SendVerification(ctx context.Context, to, verifyURL string) error
	SendPasswordReset(ctx context.Context, to, resetURL string) error
	SendInvestmentConfirmation(ctx context.Context, to, projectTitle, amount string) error
}

// SessionStore persists server-side refresh sessions. One session per user:
// created on login, replaced on refresh, cleared on logout.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AddressGeocoder abstracts the address lookup service
type AddressGeocoder interface {
	Lookup(ctx context.Context, address string) (*geocode.Result, error)
}
