package repositories

import (
	"context"
	"testing"
	"time"

	domainerrors "brickvest.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetRepository_Flow(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createPasswordResetTable(t, db)
	repo := NewPasswordResetRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	mustExec(t, db, `INSERT INTO users(id,email,name,password_hash,role,accreditation_status,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		userID.String(), "reset@example.com", "Reset", "h", "INVESTOR", "NONE", time.Now(), time.Now())

	require.NoError(t, repo.Create(ctx, userID, "token-abc"))

	u, err := repo.GetUserByToken(ctx, "token-abc")
	require.NoError(t, err)
	require.Equal(t, userID, u.ID)

	require.NoError(t, repo.Consume(ctx, "token-abc"))

	// Consumed tokens no longer resolve.
	_, err = repo.GetUserByToken(ctx, "token-abc")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetUserByToken(ctx, "never-issued")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestEmailVerificationRepository_Flow(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createEmailVerificationTable(t, db)
	repo := NewEmailVerificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	mustExec(t, db, `INSERT INTO users(id,email,name,password_hash,role,accreditation_status,email_verified,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		userID.String(), "verify@example.com", "Verify", "h", "INVESTOR", "NONE", false, time.Now(), time.Now())

	require.NoError(t, repo.Create(ctx, userID, "verify-token"))

	u, err := repo.GetUserByToken(ctx, "verify-token")
	require.NoError(t, err)
	require.Equal(t, userID, u.ID)

	require.NoError(t, repo.MarkVerified(ctx, "verify-token"))

	_, err = repo.GetUserByToken(ctx, "verify-token")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
