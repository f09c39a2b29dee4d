package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email               string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                string     `gorm:"type:varchar(100);not null"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	Role                string     `gorm:"type:varchar(50);not null;default:'investor'"`
	AccreditationStatus string     `gorm:"type:varchar(50);not null;default:'none'"`
	PaymentCustomerID   string     `gorm:"type:varchar(255)"`
	EmailVerified       bool       `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

type UserFavorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

type PasswordReset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

type EmailVerification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Token      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	VerifiedAt *time.Time
	CreatedAt  time.Time
}
