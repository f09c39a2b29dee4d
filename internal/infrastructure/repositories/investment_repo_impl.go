package repositories

import (
	"context"
	"errors"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/infrastructure/models"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

var investmentListSpec = ListSpec{
	Fields: map[string]FieldDef{
		"investorId":    {Column: "investor_id"},
		"projectId":     {Column: "project_id"},
		"amount":        {Column: "amount"},
		"status":        {Column: "status", Upper: true},
		"paymentMethod": {Column: "payment_method", Upper: true},
		"createdAt":     {Column: "created_at"},
	},
	Preloads: map[string]string{
		"investor": "Investor",
		"project":  "Project",
	},
}

// InvestmentRepository implements investment data operations
type InvestmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create creates a new investment
func (r *InvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	m := r.toModel(investment)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	investment.ID = m.ID
	investment.CreatedAt = m.CreatedAt
	investment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an investment by ID with its investor and project
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	var m models.Investment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Preload("Investor").
		Preload("Project").
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus transitions an investment's status
func (r *InvestmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Investment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetRefundRef records the gateway refund reference on an investment
func (r *InvestmentRepository) SetRefundRef(ctx context.Context, id uuid.UUID, refundRef string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Investment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"refund_ref": refundRef,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns investments matching the query with the total match count
func (r *InvestmentRepository) List(ctx context.Context, q utils.ListQuery) ([]*entities.Investment, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := investmentListSpec.Filtered(db.Model(&models.Investment{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Investment
	if err := investmentListSpec.Page(investmentListSpec.Filtered(db.Model(&models.Investment{}), q), q).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	investments := make([]*entities.Investment, 0, len(ms))
	for i := range ms {
		investments = append(investments, r.toEntity(&ms[i]))
	}
	return investments, total, nil
}

// GetByInvestorID returns an investor's investments newest first
func (r *InvestmentRepository) GetByInvestorID(ctx context.Context, investorID uuid.UUID, page, limit int) ([]*entities.Investment, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	page, limit = utils.NormalizePage(page, limit)

	var total int64
	if err := db.Model(&models.Investment{}).
		Where("investor_id = ?", investorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Investment
	if err := db.
		Preload("Project").
		Where("investor_id = ?", investorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(utils.Offset(page, limit)).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	investments := make([]*entities.Investment, 0, len(ms))
	for i := range ms {
		investments = append(investments, r.toEntity(&ms[i]))
	}
	return investments, total, nil
}

// SumCompletedByProject recomputes the funding total from completed investments
func (r *InvestmentRepository) SumCompletedByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db)

	var sum decimal.Decimal
	err := db.WithContext(ctx).Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("project_id = ? AND status = ?", projectID, string(entities.InvestmentStatusCompleted)).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CancelPendingByProject cancels every pending investment on the project
func (r *InvestmentRepository) CancelPendingByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Investment{}).
		Where("project_id = ? AND status = ?", projectID, string(entities.InvestmentStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entities.InvestmentStatusCancelled),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *InvestmentRepository) toModel(i *entities.Investment) *models.Investment {
	m := &models.Investment{
		ID:             i.ID,
		InvestorID:     i.InvestorID,
		ProjectID:      i.ProjectID,
		Amount:         i.Amount,
		TransactionFee: i.TransactionFee,
		Status:         string(i.Status),
		PaymentMethod:  string(i.PaymentMethod),
	}
	if i.PaymentRef.Valid {
		m.PaymentRef = &i.PaymentRef.String
	}
	if i.RefundRef.Valid {
		m.RefundRef = &i.RefundRef.String
	}
	return m
}

func (r *InvestmentRepository) toEntity(m *models.Investment) *entities.Investment {
	i := &entities.Investment{
		ID:             m.ID,
		InvestorID:     m.InvestorID,
		ProjectID:      m.ProjectID,
		Amount:         m.Amount,
		TransactionFee: m.TransactionFee,
		Status:         entities.InvestmentStatus(m.Status),
		PaymentMethod:  entities.PaymentMethod(m.PaymentMethod),
		PaymentRef:     null.StringFromPtr(m.PaymentRef),
		RefundRef:      null.StringFromPtr(m.RefundRef),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.Investor.ID != uuid.Nil {
		i.Investor = &entities.User{
			ID:    m.Investor.ID,
			Email: m.Investor.Email,
			Name:  m.Investor.Name,
			Role:  entities.UserRole(m.Investor.Role),
		}
	}

	if m.Project.ID != uuid.Nil {
		i.Project = &entities.Project{
			ID:            m.Project.ID,
			Title:         m.Project.Title,
			Status:        entities.ProjectStatus(m.Project.Status),
			FundingGoal:   m.Project.FundingGoal,
			FundingRaised: m.Project.FundingRaised,
		}
	}

	return i
}
