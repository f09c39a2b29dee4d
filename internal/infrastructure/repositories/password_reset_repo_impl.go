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

// resetTokenTTL bounds how long a reset link stays valid
const resetTokenTTL = time.Hour

// PasswordResetRepository implements password reset token operations
type PasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create stores a reset token for a user
func (r *PasswordResetRepository) Create(ctx context.Context, userID uuid.UUID, token string) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(&models.PasswordReset{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}).Error
}

// GetUserByToken resolves an unexpired, unused token to its user
func (r *PasswordResetRepository) GetUserByToken(ctx context.Context, token string) (*entities.User, error) {
	db := GetDB(ctx, r.db)

	var reset models.PasswordReset
	if err := db.WithContext(ctx).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	return NewUserRepository(r.db).GetByID(ctx, reset.UserID)
}

// Consume marks a token as used
func (r *PasswordResetRepository) Consume(ctx context.Context, token string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PasswordReset{}).
		Where("token = ? AND used_at IS NULL", token).
		Update("used_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
