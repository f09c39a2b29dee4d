package repositories

import (
	"context"
	"time"

	"brickvest.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats holds platform-wide admin dashboard numbers
type DashboardStats struct {
	TotalUsers         int64           `json:"totalUsers"`
	TotalProjects      int64           `json:"totalProjects"`
	ActiveProjects     int64           `json:"activeProjects"`
	FundedProjects     int64           `json:"fundedProjects"`
	TotalInvestments   int64           `json:"totalInvestments"`
	TotalFundingRaised decimal.Decimal `json:"totalFundingRaised"`
}

// InvestmentStats holds per-status investment aggregates
type InvestmentStats struct {
	Status entities.InvestmentStatus `json:"status"`
	Count  int64                     `json:"count"`
	Total  decimal.Decimal           `json:"total"`
}

// UserActivity holds registration and investment activity per day
type UserActivity struct {
	Day           time.Time `json:"day"`
	Registrations int64     `json:"registrations"`
	Investments   int64     `json:"investments"`
}

// MarketTrend holds funding volume per day
type MarketTrend struct {
	Day    time.Time       `json:"day"`
	Volume decimal.Decimal `json:"volume"`
	Count  int64           `json:"count"`
}

// ProjectPerformance holds funding progress for a single project
type ProjectPerformance struct {
	ProjectID      uuid.UUID       `json:"projectId"`
	FundingGoal    decimal.Decimal `json:"fundingGoal"`
	FundingRaised  decimal.Decimal `json:"fundingRaised"`
	PercentFunded  float64         `json:"percentFunded"`
	InvestorCount  int64           `json:"investorCount"`
	AverageAmount  decimal.Decimal `json:"averageAmount"`
	ViewCount      int64           `json:"viewCount"`
	FavoriteCount  int64           `json:"favoriteCount"`
	DaysToDeadline int             `json:"daysToDeadline"`
}

// AnalyticsRepository defines aggregate reporting queries
type AnalyticsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	InvestmentStats(ctx context.Context) ([]InvestmentStats, error)
	UserActivity(ctx context.Context, since time.Time) ([]UserActivity, error)
	MarketTrends(ctx context.Context, since time.Time) ([]MarketTrend, error)
	ProjectPerformance(ctx context.Context, projectID uuid.UUID) (*ProjectPerformance, error)
}
