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
	"gorm.io/gorm"
)

var documentListSpec = ListSpec{
	Fields: map[string]FieldDef{
		"fileName":    {Column: "file_name"},
		"contentType": {Column: "content_type"},
		"ownerId":     {Column: "owner_id"},
		"size":        {Column: "size"},
		"createdAt":   {Column: "created_at"},
	},
}

// DocumentRepository implements document data operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	m := r.toModel(doc)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	doc.ID = m.ID
	doc.CreatedAt = m.CreatedAt
	doc.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a document by ID with its shares
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Preload("Shares").
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists document metadata mutations
func (r *DocumentRepository) Update(ctx context.Context, doc *entities.Document) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", doc.ID).
		Updates(map[string]interface{}{
			"file_name":   doc.FileName,
			"description": doc.Description,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete hides a document from all queries
func (r *DocumentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListAccessible returns documents the user owns or has been granted a share on
func (r *DocumentRepository) ListAccessible(ctx context.Context, userID uuid.UUID, q utils.ListQuery) ([]*entities.Document, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	shared := GetDB(ctx, r.db).Model(&models.DocumentShare{}).
		Select("document_id").
		Where("user_id = ?", userID)
	accessible := func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ? OR id IN (?)", userID, shared)
	}

	var total int64
	if err := documentListSpec.Filtered(accessible(db.Model(&models.Document{})), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Document
	if err := documentListSpec.Page(documentListSpec.Filtered(accessible(db.Model(&models.Document{})), q), q).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]*entities.Document, 0, len(ms))
	for i := range ms {
		docs = append(docs, r.toEntity(&ms[i]))
	}
	return docs, total, nil
}

// AddShare grants or updates a user's permission on a document
func (r *DocumentRepository) AddShare(ctx context.Context, share *entities.DocumentShare) error {
	db := GetDB(ctx, r.db)

	var existing models.DocumentShare
	err := db.WithContext(ctx).
		Where("document_id = ? AND user_id = ?", share.DocumentID, share.UserID).
		First(&existing).Error
	if err == nil {
		return db.WithContext(ctx).Model(&models.DocumentShare{}).
			Where("document_id = ? AND user_id = ?", share.DocumentID, share.UserID).
			Update("permission", string(share.Permission)).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := &models.DocumentShare{
		ID:         uuid.New(),
		DocumentID: share.DocumentID,
		UserID:     share.UserID,
		Permission: string(share.Permission),
		CreatedAt:  time.Now(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	share.ID = m.ID
	share.CreatedAt = m.CreatedAt
	return nil
}

// GetShare returns a user's share on a document if one exists
func (r *DocumentRepository) GetShare(ctx context.Context, documentID, userID uuid.UUID) (*entities.DocumentShare, error) {
	var m models.DocumentShare
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("document_id = ? AND user_id = ?", documentID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.DocumentShare{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		UserID:     m.UserID,
		Permission: entities.SharePermission(m.Permission),
		CreatedAt:  m.CreatedAt,
	}, nil
}

func (r *DocumentRepository) toModel(d *entities.Document) *models.Document {
	return &models.Document{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		StorageKey:  d.StorageKey,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Size:        d.Size,
		Description: d.Description,
	}
}

func (r *DocumentRepository) toEntity(m *models.Document) *entities.Document {
	d := &entities.Document{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		StorageKey:  m.StorageKey,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, s := range m.Shares {
		d.Shares = append(d.Shares, entities.DocumentShare{
			ID:         s.ID,
			DocumentID: s.DocumentID,
			UserID:     s.UserID,
			Permission: entities.SharePermission(s.Permission),
			CreatedAt:  s.CreatedAt,
		})
	}
	return d
}
