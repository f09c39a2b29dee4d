package repositories

import (
	"context"
	"errors"
	"sort"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"brickvest.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsRepository implements aggregate reporting queries
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Dashboard returns platform-wide totals for the admin dashboard
func (r *AnalyticsRepository) Dashboard(ctx context.Context) (*repositories.DashboardStats, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	stats := &repositories.DashboardStats{}

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).
		Where("status = ?", string(entities.ProjectStatusActive)).
		Count(&stats.ActiveProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).
		Where("status = ?", string(entities.ProjectStatusFunded)).
		Count(&stats.FundedProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Investment{}).Count(&stats.TotalInvestments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", string(entities.InvestmentStatusCompleted)).
		Scan(&stats.TotalFundingRaised).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// InvestmentStats returns investment counts and totals grouped by status
func (r *AnalyticsRepository) InvestmentStats(ctx context.Context) ([]repositories.InvestmentStats, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var rows []struct {
		Status string
		Count  int64
		Total  decimal.Decimal
	}
	if err := db.Model(&models.Investment{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]repositories.InvestmentStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, repositories.InvestmentStats{
			Status: entities.InvestmentStatus(row.Status),
			Count:  row.Count,
			Total:  row.Total,
		})
	}
	return stats, nil
}

// UserActivity returns per-day registration and investment counts since the
// given time. Bucketing happens in Go so the query stays portable across
// the postgres and sqlite drivers.
func (r *AnalyticsRepository) UserActivity(ctx context.Context, since time.Time) ([]repositories.UserActivity, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var userTimes []time.Time
	if err := db.Model(&models.User{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &userTimes).Error; err != nil {
		return nil, err
	}

	var investmentTimes []time.Time
	if err := db.Model(&models.Investment{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &investmentTimes).Error; err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*repositories.UserActivity)
	bucket := func(t time.Time) *repositories.UserActivity {
		day := t.UTC().Truncate(24 * time.Hour)
		a, ok := byDay[day]
		if !ok {
			a = &repositories.UserActivity{Day: day}
			byDay[day] = a
		}
		return a
	}
	for _, t := range userTimes {
		bucket(t).Registrations++
	}
	for _, t := range investmentTimes {
		bucket(t).Investments++
	}

	activity := make([]repositories.UserActivity, 0, len(byDay))
	for _, a := range byDay {
		activity = append(activity, *a)
	}
	sort.Slice(activity, func(i, j int) bool { return activity[i].Day.Before(activity[j].Day) })
	return activity, nil
}

// MarketTrends returns per-day completed funding volume since the given time.
func (r *AnalyticsRepository) MarketTrends(ctx context.Context, since time.Time) ([]repositories.MarketTrend, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var rows []struct {
		CreatedAt time.Time
		Amount    decimal.Decimal
	}
	if err := db.Model(&models.Investment{}).
		Select("created_at, amount").
		Where("created_at >= ? AND status = ?", since, string(entities.InvestmentStatusCompleted)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*repositories.MarketTrend)
	for _, row := range rows {
		day := row.CreatedAt.UTC().Truncate(24 * time.Hour)
		t, ok := byDay[day]
		if !ok {
			t = &repositories.MarketTrend{Day: day, Volume: decimal.Zero}
			byDay[day] = t
		}
		t.Volume = t.Volume.Add(row.Amount)
		t.Count++
	}

	trends := make([]repositories.MarketTrend, 0, len(byDay))
	for _, t := range byDay {
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Day.Before(trends[j].Day) })
	return trends, nil
}

// ProjectPerformance returns funding progress metrics for one project
func (r *AnalyticsRepository) ProjectPerformance(ctx context.Context, projectID uuid.UUID) (*repositories.ProjectPerformance, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	var investorCount int64
	if err := db.Model(&models.Investment{}).
		Where("project_id = ? AND status = ?", projectID, string(entities.InvestmentStatusCompleted)).
		Distinct("investor_id").
		Count(&investorCount).Error; err != nil {
		return nil, err
	}

	var completedCount int64
	if err := db.Model(&models.Investment{}).
		Where("project_id = ? AND status = ?", projectID, string(entities.InvestmentStatusCompleted)).
		Count(&completedCount).Error; err != nil {
		return nil, err
	}

	perf := &repositories.ProjectPerformance{
		ProjectID:     project.ID,
		FundingGoal:   project.FundingGoal,
		FundingRaised: project.FundingRaised,
		InvestorCount: investorCount,
		AverageAmount: decimal.Zero,
		ViewCount:     project.ViewCount,
		FavoriteCount: project.FavoriteCount,
	}
	if project.FundingGoal.IsPositive() {
		percent, _ := project.FundingRaised.Div(project.FundingGoal).Mul(decimal.NewFromInt(100)).Float64()
		perf.PercentFunded = percent
	}
	if completedCount > 0 {
		perf.AverageAmount = project.FundingRaised.Div(decimal.NewFromInt(completedCount)).Round(2)
	}
	if remaining := time.Until(project.FundingDeadline); remaining > 0 {
		perf.DaysToDeadline = int(remaining.Hours() / 24)
	}

	return perf, nil
}
