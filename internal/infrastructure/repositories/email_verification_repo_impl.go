package repositories

import (
	"context"
	"errors"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailVerificationRepository implements email verification operations
type EmailVerificationRepository struct {
	db *gorm.DB
}

// NewEmailVerificationRepository creates a new email verification repository
func NewEmailVerificationRepository(db *gorm.DB) *EmailVerificationRepository {
	return &EmailVerificationRepository{db: db}
}

// Create stores a verification token for a user
func (r *EmailVerificationRepository) Create(ctx context.Context, userID uuid.UUID, token string) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(&models.EmailVerification{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	}).Error
}

// GetUserByToken resolves an unconsumed verification token to its user
func (r *EmailVerificationRepository) GetUserByToken(ctx context.Context, token string) (*entities.User, error) {
	db := GetDB(ctx, r.db)

	var verification models.EmailVerification
	if err := db.WithContext(ctx).
		Where("token = ? AND verified_at IS NULL", token).
		First(&verification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	return NewUserRepository(r.db).GetByID(ctx, verification.UserID)
}

// MarkVerified consumes a verification token
func (r *EmailVerificationRepository) MarkVerified(ctx context.Context, token string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.EmailVerification{}).
		Where("token = ? AND verified_at IS NULL", token).
		Update("verified_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
