package repositories

import (
	"context"
	"time"

	"brickvest.backend/internal/domain/entities"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
)

// ProjectRepository defines project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProjectStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q utils.ListQuery) ([]*entities.Project, int64, error)

	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	// RecountFavorites recomputes the favorite counter from user_favorites rows.
	RecountFavorites(ctx context.Context, id uuid.UUID) error
	AddUpdate(ctx context.Context, update *entities.ProjectUpdate) error
	UpdateImages(ctx context.Context, id uuid.UUID, imageKeys []string) error

	// ListExpiredActive returns active projects whose funding deadline has passed.
	ListExpiredActive(ctx context.Context, now time.Time, limit int) ([]*entities.Project, error)
}
