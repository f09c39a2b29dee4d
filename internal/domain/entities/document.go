package entities

import (
	"time"

	"github.com/google/uuid"
)

// SharePermission represents the access level of a document share grant
type SharePermission string

const (
	SharePermissionView     SharePermission = "VIEW"
	SharePermissionDownload SharePermission = "DOWNLOAD"
	SharePermissionEdit     SharePermission = "EDIT"
)

// DocumentShare represents a sharing grant on a document
type DocumentShare struct {
	ID         uuid.UUID       `json:"id"`
	DocumentID uuid.UUID       `json:"documentId"`
	UserID     uuid.UUID       `json:"userId"`
	Permission SharePermission `json:"permission"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Document represents an uploaded file reference
type Document struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	StorageKey  string     `json:"storageKey"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	Description string     `json:"description"`
	URL         string     `json:"url,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`

	// Joins
	Shares []DocumentShare `json:"shares,omitempty"`
}

// UpdateDocumentInput represents input for updating document metadata
type UpdateDocumentInput struct {
	FileName    *string `json:"fileName" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// ShareDocumentInput represents input for granting access to a document
type ShareDocumentInput struct {
	UserID     string `json:"userId" binding:"required,uuid"`
	Permission string `json:"permission" binding:"required,oneof=view download edit"`
}

// SignedURLInput represents input for requesting a presigned download URL
type SignedURLInput struct {
	DocumentID string `json:"documentId" binding:"required,uuid"`
}
