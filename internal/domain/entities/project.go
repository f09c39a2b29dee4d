package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusPending   ProjectStatus = "PENDING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusFunded    ProjectStatus = "FUNDED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// Location represents a geocoded project address
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ProjectUpdate represents an update post nested under a project
type ProjectUpdate struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project represents a fundraising campaign
type Project struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	FundingGoal     decimal.Decimal `json:"fundingGoal"`
	FundingRaised   decimal.Decimal `json:"fundingRaised"`
	FundingDeadline time.Time       `json:"fundingDeadline"`
	Status          ProjectStatus   `json:"status"`
	MinInvestment   decimal.Decimal `json:"minInvestment"`
	AccreditedOnly  bool            `json:"accreditedOnly"`
	OwnerID         uuid.UUID       `json:"ownerId"`
	Location        Location        `json:"location"`
	ImageKeys       []string        `json:"imageKeys"`
	ViewCount       int64           `json:"viewCount"`
	FavoriteCount   int64           `json:"favoriteCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"-"`

	// Joins
	Owner   *User           `json:"owner,omitempty"`
	Updates []ProjectUpdate `json:"updates,omitempty"`
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Title           string    `json:"title" binding:"required,min=3,max=200"`
	Description     string    `json:"description" binding:"required"`
	FundingGoal     string    `json:"fundingGoal" binding:"required"`
	FundingDeadline time.Time `json:"fundingDeadline" binding:"required"`
	MinInvestment   string    `json:"minInvestment" binding:"required"`
	AccreditedOnly  bool      `json:"accreditedOnly"`
	Address         string    `json:"address" binding:"required"`
	Status          string    `json:"status" binding:"omitempty,oneof=draft pending active"`
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Title           *string    `json:"title" binding:"omitempty,min=3,max=200"`
	Description     *string    `json:"description"`
	FundingGoal     *string    `json:"fundingGoal"`
	FundingDeadline *time.Time `json:"fundingDeadline"`
	MinInvestment   *string    `json:"minInvestment"`
	AccreditedOnly  *bool      `json:"accreditedOnly"`
	Address         *string    `json:"address"`
	Status          *string    `json:"status" binding:"omitempty,oneof=draft pending active funded completed cancelled"`
}

// CreateProjectUpdateInput represents input for posting a project update
type CreateProjectUpdateInput struct {
	Title string `json:"title" binding:"required,min=3,max=200"`
	Body  string `json:"body" binding:"required"`
}

// UpdateProjectImagesInput represents input for replacing project image keys
type UpdateProjectImagesInput struct {
	ImageKeys []string `json:"imageKeys" binding:"required"`
}
