package handlers

import (
	"net/http"
	"strconv"

	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/interfaces/http/middleware"
	"brickvest.backend/internal/interfaces/http/response"
	"brickvest.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalyticsHandler handles reporting endpoints
type AnalyticsHandler struct {
	analyticsUsecase *usecases.AnalyticsUsecase
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsUsecase *usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// Dashboard returns platform-wide numbers, admin only
// GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analyticsUsecase.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// InvestmentStats returns per-status investment aggregates, admin only
// GET /api/analytics/investments
func (h *AnalyticsHandler) InvestmentStats(c *gin.Context) {
	stats, err := h.analyticsUsecase.InvestmentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// UserActivity returns per-day activity over the trailing window, admin only
// GET /api/analytics/activity?days=30
func (h *AnalyticsHandler) UserActivity(c *gin.Context) {
	activity, err := h.analyticsUsecase.UserActivity(c.Request.Context(), daysParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, activity)
}

// MarketTrends returns per-day funding volume over the window
// GET /api/analytics/trends?days=30
func (h *AnalyticsHandler) MarketTrends(c *gin.Context) {
	trends, err := h.analyticsUsecase.MarketTrends(c.Request.Context(), daysParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, trends)
}

// ProjectPerformance returns funding metrics for one project
// GET /api/analytics/projects/:id
func (h *AnalyticsHandler) ProjectPerformance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	perf, err := h.analyticsUsecase.ProjectPerformance(c.Request.Context(), userID, role, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, perf)
}

func daysParam(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		return 30
	}
	return days
}
