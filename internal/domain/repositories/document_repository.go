package repositories

import (
	"context"

	"brickvest.backend/internal/domain/entities"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
)

// DocumentRepository defines document data operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// ListAccessible returns documents the user owns or has a share grant on.
	ListAccessible(ctx context.Context, userID uuid.UUID, q utils.ListQuery) ([]*entities.Document, int64, error)

	AddShare(ctx context.Context, share *entities.DocumentShare) error
	GetShare(ctx context.Context, documentID, userID uuid.UUID) (*entities.DocumentShare, error)
}
