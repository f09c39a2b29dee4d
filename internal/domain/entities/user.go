package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleInvestor UserRole = "INVESTOR"
	UserRoleManager  UserRole = "MANAGER"
	UserRoleAdmin    UserRole = "ADMIN"
)

// AccreditationStatus represents accredited-investor verification status
type AccreditationStatus string

const (
	AccreditationNone       AccreditationStatus = "NONE"
	AccreditationPending    AccreditationStatus = "PENDING"
	AccreditationAccredited AccreditationStatus = "ACCREDITED"
)

// User represents a user entity
type User struct {
	ID                  uuid.UUID           `json:"id"`
	Email               string              `json:"email"`
	Name                string              `json:"name"`
	PasswordHash        string              `json:"-"`
	Role                UserRole            `json:"role"`
	AccreditationStatus AccreditationStatus `json:"accreditationStatus"`
	PaymentCustomerID   string              `json:"-"`
	EmailVerified       bool                `json:"emailVerified"`
	FavoriteProjectIDs  []uuid.UUID         `json:"favoriteProjectIds,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	DeletedAt           *time.Time          `json:"-"`
}

// CreateUserInput represents input for registration
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=investor manager"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user"`
}

// UpdateDetailsInput represents input for profile updates
type UpdateDetailsInput struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordInput represents input for changing the password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ForgotPasswordInput represents input for requesting a password reset
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput represents input for completing a password reset
type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}
