package usecases

import (
	"context"
	"fmt"
	"io"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"brickvest.backend/pkg/logger"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentUpload is a file arriving with a document upload request
type DocumentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Description string
	Body        io.Reader
}

// DocumentUsecase handles document storage and sharing business logic
type DocumentUsecase struct {
	documentRepo repositories.DocumentRepository
	userRepo     repositories.UserRepository
	storage      FileStorage
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	documentRepo repositories.DocumentRepository,
	userRepo repositories.UserRepository,
	storage FileStorage,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo: documentRepo,
		userRepo:     userRepo,
		storage:      storage,
	}
}

// Upload stores the file and creates the document record
func (u *DocumentUsecase) Upload(ctx context.Context, ownerID uuid.UUID, upload DocumentUpload) (*entities.Document, error) {
	if upload.FileName == "" {
		return nil, domainerrors.BadRequest("file name is required")
	}

	docID := uuid.New()
	key := fmt.Sprintf("documents/%s/%s_%s", ownerID, docID.String()[:8], upload.FileName)
	if err := u.storage.Upload(ctx, key, upload.Body, upload.ContentType); err != nil {
		return nil, err
	}

	doc := &entities.Document{
		ID:          docID,
		OwnerID:     ownerID,
		StorageKey:  key,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		Description: upload.Description,
	}
	if err := u.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get returns a document the requester can access, with a download URL
func (u *DocumentUsecase) Get(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) (*entities.Document, error) {
	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.authorizeRead(ctx, requesterID, requesterRole, doc); err != nil {
		return nil, err
	}

	url, err := u.storage.SignedURL(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}
	doc.URL = url
	return doc, nil
}

// List returns documents the requester owns or was granted access to
func (u *DocumentUsecase) List(ctx context.Context, requesterID uuid.UUID, q utils.ListQuery) ([]*entities.Document, int64, error) {
	return u.documentRepo.ListAccessible(ctx, requesterID, q)
}

// Update edits document metadata, owner-or-admin or edit-share only
func (u *DocumentUsecase) Update(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID, input *entities.UpdateDocumentInput) (*entities.Document, error) {
	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.OwnerID != requesterID && requesterRole != entities.UserRoleAdmin {
		share, err := u.documentRepo.GetShare(ctx, id, requesterID)
		if err != nil || share.Permission != entities.SharePermissionEdit {
			return nil, domainerrors.Forbidden("no edit access to this document")
		}
	}

	if input.FileName != nil {
		doc.FileName = *input.FileName
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	if err := u.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes a document and its stored object, owner-or-admin only
func (u *DocumentUsecase) Delete(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) error {
	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.OwnerID != requesterID && requesterRole != entities.UserRoleAdmin {
		return domainerrors.Forbidden("not the document owner")
	}

	if err := u.documentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	// Best effort: the record is already gone for clients, but an orphaned
	// object is worth a trace.
	if err := u.storage.Delete(ctx, doc.StorageKey); err != nil {
		logger.Warn(ctx, "failed to delete stored object for removed document",
			zap.String("storage_key", doc.StorageKey), zap.Error(err))
	}
	return nil
}

// Share grants another user access to a document, owner-or-admin only
func (u *DocumentUsecase) Share(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID, input *entities.ShareDocumentInput) (*entities.DocumentShare, error) {
	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != requesterID && requesterRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not the document owner")
	}

	granteeID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid user id")
	}
	if _, err := u.userRepo.GetByID(ctx, granteeID); err != nil {
		return nil, err
	}
	if granteeID == doc.OwnerID {
		return nil, domainerrors.BadRequest("cannot share a document with its owner")
	}

	share := &entities.DocumentShare{
		DocumentID: id,
		UserID:     granteeID,
		Permission: entities.SharePermission(normalizeEnum(input.Permission)),
	}
	if err := u.documentRepo.AddShare(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

// SignedURL returns a presigned download URL for an accessible document
func (u *DocumentUsecase) SignedURL(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) (string, error) {
	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := u.authorizeRead(ctx, requesterID, requesterRole, doc); err != nil {
		return "", err
	}
	return u.storage.SignedURL(ctx, doc.StorageKey)
}

func (u *DocumentUsecase) authorizeRead(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, doc *entities.Document) error {
	if doc.OwnerID == requesterID || requesterRole == entities.UserRoleAdmin {
		return nil
	}
	if _, err := u.documentRepo.GetShare(ctx, doc.ID, requesterID); err != nil {
		return domainerrors.Forbidden("no access to this document")
	}
	return nil
}
