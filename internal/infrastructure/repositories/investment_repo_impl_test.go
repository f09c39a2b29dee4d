package repositories

import (
	"context"
	"testing"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func seedInvestment(t *testing.T, repo *InvestmentRepository, investorID, projectID uuid.UUID, amount int64, status entities.InvestmentStatus) *entities.Investment {
	t.Helper()
	i := &entities.Investment{
		ID:             uuid.New(),
		InvestorID:     investorID,
		ProjectID:      projectID,
		Amount:         decimal.NewFromInt(amount),
		TransactionFee: decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(0.02)),
		Status:         status,
		PaymentMethod:  entities.PaymentMethodCard,
		PaymentRef:     null.StringFrom("ch_" + uuid.NewString()[:8]),
	}
	require.NoError(t, repo.Create(context.Background(), i))
	return i
}

func TestInvestmentRepository_BasicFlow(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createProjectTables(t, db)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	investorID := uuid.New()
	projectID := uuid.New()
	mustExec(t, db, `INSERT INTO users(id,email,name,password_hash,role,accreditation_status,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		investorID.String(), "inv@example.com", "Inv", "h", "INVESTOR", "NONE", time.Now(), time.Now())
	mustExec(t, db, `INSERT INTO projects(id,title,funding_goal,funding_raised,funding_deadline,status,min_investment,owner_id,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		projectID.String(), "Lofts", "500000", "0", time.Now().Add(24*time.Hour), "ACTIVE", "1000", uuid.New().String(), time.Now(), time.Now())

	i := seedInvestment(t, repo, investorID, projectID, 5000, entities.InvestmentStatusCompleted)

	got, err := repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(5000)))
	require.True(t, got.TransactionFee.Equal(decimal.NewFromInt(100)))
	require.Equal(t, entities.PaymentMethodCard, got.PaymentMethod)
	require.True(t, got.PaymentRef.Valid)
	require.NotNil(t, got.Investor)
	require.Equal(t, "inv@example.com", got.Investor.Email)
	require.NotNil(t, got.Project)
	require.Equal(t, "Lofts", got.Project.Title)

	require.NoError(t, repo.UpdateStatus(ctx, i.ID, entities.InvestmentStatusCancelled))
	require.NoError(t, repo.SetRefundRef(ctx, i.ID, "rf_123"))

	cancelled, err := repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestmentStatusCancelled, cancelled.Status)
	require.Equal(t, "rf_123", cancelled.RefundRef.String)
}

func TestInvestmentRepository_SumCompletedByProject(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createProjectTables(t, db)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	other := uuid.New()
	investorID := uuid.New()

	seedInvestment(t, repo, investorID, projectID, 5000, entities.InvestmentStatusCompleted)
	seedInvestment(t, repo, investorID, projectID, 2500, entities.InvestmentStatusCompleted)
	// Pending and cancelled rows must not count toward the ledger.
	seedInvestment(t, repo, investorID, projectID, 99999, entities.InvestmentStatusPending)
	seedInvestment(t, repo, investorID, projectID, 99999, entities.InvestmentStatusCancelled)
	seedInvestment(t, repo, investorID, other, 777, entities.InvestmentStatusCompleted)

	sum, err := repo.SumCompletedByProject(ctx, projectID)
	require.NoError(t, err)
	require.True(t, sum.Equal(decimal.NewFromInt(7500)), "got %s", sum)

	empty, err := repo.SumCompletedByProject(ctx, uuid.New())
	require.NoError(t, err)
	require.True(t, empty.IsZero())
}

func TestInvestmentRepository_CancelPendingByProject(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createProjectTables(t, db)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	other := uuid.New()
	investorID := uuid.New()

	p1 := seedInvestment(t, repo, investorID, projectID, 1000, entities.InvestmentStatusPending)
	p2 := seedInvestment(t, repo, investorID, projectID, 2000, entities.InvestmentStatusPending)
	done := seedInvestment(t, repo, investorID, projectID, 3000, entities.InvestmentStatusCompleted)
	elsewhere := seedInvestment(t, repo, investorID, other, 4000, entities.InvestmentStatusPending)

	n, err := repo.CancelPendingByProject(ctx, projectID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, entities.InvestmentStatusCancelled, got.Status)
	}

	// Completed rows and other projects are untouched.
	got, err := repo.GetByID(ctx, done.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestmentStatusCompleted, got.Status)

	got, err = repo.GetByID(ctx, elsewhere.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvestmentStatusPending, got.Status)

	none, err := repo.CancelPendingByProject(ctx, projectID)
	require.NoError(t, err)
	require.Zero(t, none)
}

func TestInvestmentRepository_ListAndByInvestor(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createProjectTables(t, db)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	investorID := uuid.New()
	otherInvestor := uuid.New()
	projectID := uuid.New()

	seedInvestment(t, repo, investorID, projectID, 1000, entities.InvestmentStatusCompleted)
	seedInvestment(t, repo, investorID, projectID, 2000, entities.InvestmentStatusPending)
	seedInvestment(t, repo, otherInvestor, projectID, 3000, entities.InvestmentStatusCompleted)

	completed, total, err := repo.List(ctx, utils.ListQuery{
		Filters: []utils.Filter{{Field: "status", Op: utils.FilterOpEq, Values: []string{"completed"}}},
		Page:    1,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, completed, 2)

	mine, total, err := repo.GetByInvestorID(ctx, investorID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, mine, 2)

	paged, total, err := repo.GetByInvestorID(ctx, investorID, 2, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, paged, 1)
}

func TestInvestmentRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createInvestmentTable(t, db)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.InvestmentStatusCompleted), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetRefundRef(ctx, uuid.New(), "rf_x"), domainerrors.ErrNotFound)
}
