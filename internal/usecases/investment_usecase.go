package usecases

import (
	"context"
	"fmt"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"brickvest.backend/internal/infrastructure/gateway"
	"brickvest.backend/pkg/logger"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvestmentUsecase handles the investment lifecycle and keeps the project
// funding ledger consistent with it.
type InvestmentUsecase struct {
	investmentRepo repositories.InvestmentRepository
	projectRepo    repositories.ProjectRepository
	userRepo       repositories.UserRepository
	uow            repositories.UnitOfWork
	paymentGateway PaymentGateway
	emailSender    EmailSender
	feePercent     decimal.Decimal
	now            func() time.Time
}

// NewInvestmentUsecase creates a new investment usecase. feePercent is the
// platform fee in percent (2.0 means 2%), charged on top of the amount.
func NewInvestmentUsecase(
	investmentRepo repositories.InvestmentRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	paymentGateway PaymentGateway,
	emailSender EmailSender,
	feePercent float64,
) *InvestmentUsecase {
	return &InvestmentUsecase{
		investmentRepo: investmentRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		uow:            uow,
		paymentGateway: paymentGateway,
		emailSender:    emailSender,
		feePercent:     decimal.NewFromFloat(feePercent),
		now:            time.Now,
	}
}

// CreateInvestment commits funds to a project. Preconditions are checked in
// order, each with its own error; the gateway is charged before anything is
// persisted, and the insert plus the funding-raised recomputation commit in
// one transaction.
func (u *InvestmentUsecase) CreateInvestment(ctx context.Context, investorID, projectID uuid.UUID, input *entities.CreateInvestmentInput) (*entities.Investment, error) {
	amount, err := parsePositiveDecimal(input.Amount, "amount")
	if err != nil {
		return nil, err
	}

	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != entities.ProjectStatusActive {
		return nil, domainerrors.ErrProjectNotActive
	}
	if u.now().After(project.FundingDeadline) {
		return nil, domainerrors.ErrDeadlinePassed
	}
	if amount.LessThan(project.MinInvestment) {
		return nil, domainerrors.ErrBelowMinInvestment
	}

	investor, err := u.userRepo.GetByID(ctx, investorID)
	if err != nil {
		return nil, err
	}
	if project.AccreditedOnly && investor.AccreditationStatus != entities.AccreditationAccredited {
		return nil, domainerrors.ErrAccreditationRequired
	}

	fee := amount.Mul(u.feePercent).Div(decimal.NewFromInt(100)).Round(2)
	method := entities.PaymentMethod(normalizeEnum(input.PaymentMethod))

	investmentID := uuid.New()
	charge, err := u.paymentGateway.Charge(ctx, gateway.ChargeInput{
		Amount:         amount.Add(fee),
		Currency:       "USD",
		CustomerID:     investor.PaymentCustomerID,
		PaymentMethod:  input.PaymentMethod,
		PaymentDetails: input.PaymentDetails,
		Reference:      investmentID.String(),
	})
	if err != nil {
		return nil, err
	}

	status := entities.InvestmentStatusPending
	if method.Settles() && charge.Settled {
		status = entities.InvestmentStatusCompleted
	}

	investment := &entities.Investment{
		ID:             investmentID,
		InvestorID:     investorID,
		ProjectID:      projectID,
		Amount:         amount,
		PaymentMethod:  method,
		PaymentRef:     nullString(charge.ProviderRef),
		TransactionFee: fee,
		Status:         status,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.investmentRepo.Create(txCtx, investment); err != nil {
			return err
		}
		return u.syncProjectLedger(txCtx, projectID)
	})
	if err != nil {
		return nil, err
	}

	if status == entities.InvestmentStatusCompleted {
		if err := u.emailSender.SendInvestmentConfirmation(ctx, investor.Email, project.Title, amount.StringFixed(2)); err != nil {
			logger.Warn(ctx, "investment confirmation email failed",
				zap.String("investment_id", investment.ID.String()), zap.Error(err))
		}
	}

	return investment, nil
}

// CancelInvestment cancels a pending investment. A charged payment is
// refunded first; refund failure leaves the investment pending.
func (u *InvestmentUsecase) CancelInvestment(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) (*entities.Investment, error) {
	investment, err := u.investmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investment.InvestorID != requesterID && requesterRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not your investment")
	}
	if investment.Status != entities.InvestmentStatusPending {
		return nil, domainerrors.ErrInvestmentNotPending
	}

	if investment.PaymentRef.Valid {
		refundRef, err := u.paymentGateway.Refund(ctx, investment.PaymentRef.String, investment.Amount.Add(investment.TransactionFee))
		if err != nil {
			return nil, err
		}
		if err := u.investmentRepo.SetRefundRef(ctx, id, refundRef); err != nil {
			return nil, err
		}
		investment.RefundRef = nullString(refundRef)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.investmentRepo.UpdateStatus(txCtx, id, entities.InvestmentStatusCancelled); err != nil {
			return err
		}
		return u.syncProjectLedger(txCtx, investment.ProjectID)
	})
	if err != nil {
		return nil, err
	}

	investment.Status = entities.InvestmentStatusCancelled
	return investment, nil
}

// MarkInvestmentCompleted is the admin confirmation of an off-platform
// settlement (bank transfer or wire arriving).
func (u *InvestmentUsecase) MarkInvestmentCompleted(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	investment, err := u.investmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investment.Status != entities.InvestmentStatusPending {
		return nil, domainerrors.ErrInvestmentNotPending
	}

	// A settlement can land after the goal is reached, but never on a
	// project that has been cancelled or otherwise closed.
	project, err := u.projectRepo.GetByID(ctx, investment.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != entities.ProjectStatusActive && project.Status != entities.ProjectStatusFunded {
		return nil, domainerrors.ErrProjectNotActive
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.investmentRepo.UpdateStatus(txCtx, id, entities.InvestmentStatusCompleted); err != nil {
			return err
		}
		return u.syncProjectLedger(txCtx, investment.ProjectID)
	})
	if err != nil {
		return nil, err
	}

	investment.Status = entities.InvestmentStatusCompleted
	return investment, nil
}

// GetInvestment returns one investment to its owner or an admin
func (u *InvestmentUsecase) GetInvestment(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) (*entities.Investment, error) {
	investment, err := u.investmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investment.InvestorID != requesterID && requesterRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not your investment")
	}
	return investment, nil
}

// ListInvestments returns investments matching the query (back-office view)
func (u *InvestmentUsecase) ListInvestments(ctx context.Context, q utils.ListQuery) ([]*entities.Investment, int64, error) {
	return u.investmentRepo.List(ctx, q)
}

// ListMyInvestments returns the requester's own investments
func (u *InvestmentUsecase) ListMyInvestments(ctx context.Context, investorID uuid.UUID, page, limit int) ([]*entities.Investment, int64, error) {
	return u.investmentRepo.GetByInvestorID(ctx, investorID, page, limit)
}

// syncProjectLedger recomputes fundingRaised from completed investments and
// applies the active→funded transition. Must run inside the caller's
// transaction.
func (u *InvestmentUsecase) syncProjectLedger(ctx context.Context, projectID uuid.UUID) error {
	raised, err := u.investmentRepo.SumCompletedByProject(ctx, projectID)
	if err != nil {
		return err
	}

	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	project.FundingRaised = raised
	if project.Status == entities.ProjectStatusActive && raised.GreaterThanOrEqual(project.FundingGoal) {
		project.Status = entities.ProjectStatusFunded
	}
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("failed to sync project ledger: %w", err)
	}
	return nil
}
