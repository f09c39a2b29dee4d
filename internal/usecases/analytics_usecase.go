package usecases

import (
	"context"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// AnalyticsUsecase exposes reporting aggregates with access checks
type AnalyticsUsecase struct {
	analyticsRepo repositories.AnalyticsRepository
	projectRepo   repositories.ProjectRepository
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	analyticsRepo repositories.AnalyticsRepository,
	projectRepo repositories.ProjectRepository,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		analyticsRepo: analyticsRepo,
		projectRepo:   projectRepo,
	}
}

// Dashboard returns platform-wide totals
func (u *AnalyticsUsecase) Dashboard(ctx context.Context) (*repositories.DashboardStats, error) {
	return u.analyticsRepo.Dashboard(ctx)
}

// InvestmentStats returns per-status investment aggregates
func (u *AnalyticsUsecase) InvestmentStats(ctx context.Context) ([]repositories.InvestmentStats, error) {
	return u.analyticsRepo.InvestmentStats(ctx)
}

// UserActivity returns per-day activity over the trailing window
func (u *AnalyticsUsecase) UserActivity(ctx context.Context, days int) ([]repositories.UserActivity, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return u.analyticsRepo.UserActivity(ctx, since)
}

// MarketTrends returns per-day completed funding volume over the window
func (u *AnalyticsUsecase) MarketTrends(ctx context.Context, days int) ([]repositories.MarketTrend, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return u.analyticsRepo.MarketTrends(ctx, since)
}

// ProjectPerformance returns funding metrics for one project, restricted to
// the project owner or an admin.
func (u *AnalyticsUsecase) ProjectPerformance(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, projectID uuid.UUID) (*repositories.ProjectPerformance, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != requesterID && requesterRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not the project owner")
	}
	return u.analyticsRepo.ProjectPerformance(ctx, projectID)
}
