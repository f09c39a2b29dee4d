package repositories

import (
	"context"

	"brickvest.backend/internal/domain/entities"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q utils.ListQuery) ([]*entities.User, int64, error)

	// Favorite project references
	AddFavorite(ctx context.Context, userID, projectID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, projectID uuid.UUID) error
	ListFavoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// PasswordResetRepository defines password reset token operations
type PasswordResetRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string) error
	GetUserByToken(ctx context.Context, token string) (*entities.User, error)
	Consume(ctx context.Context, token string) error
}

// EmailVerificationRepository defines email verification operations
type EmailVerificationRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string) error
	GetUserByToken(ctx context.Context, token string) (*entities.User, error)
	MarkVerified(ctx context.Context, token string) error
}
