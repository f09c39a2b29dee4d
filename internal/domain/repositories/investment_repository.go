package repositories

import (
	"context"

	"brickvest.backend/internal/domain/entities"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentRepository defines investment data operations
type InvestmentRepository interface {
	Create(ctx context.Context, investment *entities.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error
	SetRefundRef(ctx context.Context, id uuid.UUID, refundRef string) error
	List(ctx context.Context, q utils.ListQuery) ([]*entities.Investment, int64, error)
	GetByInvestorID(ctx context.Context, investorID uuid.UUID, page, limit int) ([]*entities.Investment, int64, error)

	// SumCompletedByProject returns the authoritative funding-raised total:
	// the sum of amounts over completed investments for the project.
	SumCompletedByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error)

	// CancelPendingByProject cancels every pending investment on the project
	// and reports how many were affected. Used when a project is closed out.
	CancelPendingByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}
