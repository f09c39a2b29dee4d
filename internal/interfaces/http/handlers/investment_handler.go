package handlers

import (
	"net/http"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/interfaces/http/middleware"
	"brickvest.backend/internal/interfaces/http/response"
	"brickvest.backend/internal/usecases"
	"brickvest.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvestmentHandler handles investment endpoints
type InvestmentHandler struct {
	investmentUsecase *usecases.InvestmentUsecase
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentUsecase *usecases.InvestmentUsecase) *InvestmentHandler {
	return &InvestmentHandler{investmentUsecase: investmentUsecase}
}

// Create commits funds to a project
// POST /api/projects/:id/investments
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	var input entities.CreateInvestmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investment, err := h.investmentUsecase.CreateInvestment(c.Request.Context(), userID, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, investment)
}

// Get returns one investment, owner-or-admin only
// GET /api/investments/:id
func (h *InvestmentHandler) Get(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	investment, err := h.investmentUsecase.GetInvestment(c.Request.Context(), userID, role, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, investment)
}

// List returns investments matching the query, back-office only
// GET /api/investments
func (h *InvestmentHandler) List(c *gin.Context) {
	q := utils.ParseListQuery(c.Request.URL.Query())

	investments, total, err := h.investmentUsecase.ListInvestments(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, investments, total, q.Page, q.Limit)
}

// ListMine returns the authenticated user's investments
// GET /api/investments/me
func (h *InvestmentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	q := utils.ParseListQuery(c.Request.URL.Query())
	investments, total, err := h.investmentUsecase.ListMyInvestments(c.Request.Context(), userID, q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, investments, total, q.Page, q.Limit)
}

// Cancel cancels a pending investment
// PUT /api/investments/:id/cancel
func (h *InvestmentHandler) Cancel(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	investment, err := h.investmentUsecase.CancelInvestment(c.Request.Context(), userID, role, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, investment)
}

// Complete confirms an off-platform settlement, admin only
// PUT /api/investments/:id/complete
func (h *InvestmentHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid id"))
		return
	}

	investment, err := h.investmentUsecase.MarkInvestmentCompleted(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, investment)
}
