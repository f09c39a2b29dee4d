package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"brickvest.backend/pkg/crypto"
	"brickvest.backend/pkg/jwt"
	"brickvest.backend/pkg/logger"
	"brickvest.backend/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo       repositories.UserRepository
	emailVerifRepo repositories.EmailVerificationRepository
	resetRepo      repositories.PasswordResetRepository
	jwtService     *jwt.Service
	emailSender    EmailSender
	sessions       SessionStore
	appBaseURL     string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	emailVerifRepo repositories.EmailVerificationRepository,
	resetRepo repositories.PasswordResetRepository,
	jwtService *jwt.Service,
	emailSender EmailSender,
	sessions SessionStore,
	appBaseURL string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:       userRepo,
		emailVerifRepo: emailVerifRepo,
		resetRepo:      resetRepo,
		jwtService:     jwtService,
		emailSender:    emailSender,
		sessions:       sessions,
		appBaseURL:     strings.TrimRight(appBaseURL, "/"),
	}
}

// issueSession mints a token pair and stores the refresh token server-side,
// replacing any previous session for the user.
func (u *AuthUsecase) issueSession(ctx context.Context, user *entities.User) (*jwt.TokenPair, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	data := &redis.SessionData{UserID: user.ID.String(), RefreshToken: pair.RefreshToken}
	if err := u.sessions.CreateSession(ctx, user.ID.String(), data, u.jwtService.RefreshExpiry()); err != nil {
		return nil, err
	}
	return pair, nil
}

// Register creates a new account and emails a verification link
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.AuthResponse, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	role := entities.UserRoleInvestor
	if strings.EqualFold(input.Role, string(entities.UserRoleManager)) {
		role = entities.UserRoleManager
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                  uuid.New(),
		Email:               input.Email,
		Name:                input.Name,
		PasswordHash:        passwordHash,
		Role:                role,
		AccreditationStatus: entities.AccreditationNone,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := crypto.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}
	if err := u.emailVerifRepo.Create(ctx, user.ID, token); err != nil {
		return nil, err
	}

	// Lost verification mail never fails registration.
	verifyURL := fmt.Sprintf("%s/api/auth/verifyemail/%s", u.appBaseURL, token)
	if err := u.emailSender.SendVerification(ctx, user.Email, verifyURL); err != nil {
		logger.Warn(ctx, "verification email failed", zap.String("email", user.Email), zap.Error(err))
	}

	tokenPair, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// GetUserByID gets a user by ID, including favorite project references
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	favorites, err := u.userRepo.ListFavoriteIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FavoriteProjectIDs = favorites
	return user, nil
}

// UpdateDetails updates name and email on the profile
func (u *AuthUsecase) UpdateDetails(ctx context.Context, userID uuid.UUID, input *entities.UpdateDetailsInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
			return nil, domainerrors.ErrAlreadyExists
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user.Email = input.Email
		user.EmailVerified = false
	}
	if input.Name != "" {
		user.Name = input.Name
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return u.userRepo.Update(ctx, user)
}

// ForgotPassword issues a reset token and emails the reset link. Unknown
// emails return success so the endpoint cannot be used to probe accounts.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := u.resetRepo.Create(ctx, user.ID, token); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/auth/resetpassword/%s", u.appBaseURL, token)
	if err := u.emailSender.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		logger.Warn(ctx, "password reset email failed", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword completes a password reset using a valid token
func (u *AuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := u.resetRepo.GetUserByToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return u.resetRepo.Consume(ctx, token)
}

// VerifyEmail marks the account email verified using the mailed token
func (u *AuthUsecase) VerifyEmail(ctx context.Context, token string) error {
	user, err := u.emailVerifRepo.GetUserByToken(ctx, token)
	if err != nil {
		return err
	}

	if err := u.emailVerifRepo.MarkVerified(ctx, token); err != nil {
		return err
	}

	user.EmailVerified = true
	return u.userRepo.Update(ctx, user)
}

// RefreshToken rotates the token pair. The presented refresh token must match
// the server-side session, so a stolen token stops working after the next
// legitimate refresh or a logout.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := u.sessions.GetSession(ctx, claims.UserID.String())
	if err != nil || session.RefreshToken != refreshToken {
		return nil, jwt.ErrInvalidToken
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.issueSession(ctx, user)
}

// Logout clears the server-side session, invalidating the refresh token
func (u *AuthUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	return u.sessions.DeleteSession(ctx, userID.String())
}
