package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/infrastructure/models"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var projectListSpec = ListSpec{
	Fields: map[string]FieldDef{
		"title":           {Column: "title"},
		"status":          {Column: "status", Upper: true},
		"fundingGoal":     {Column: "funding_goal"},
		"fundingRaised":   {Column: "funding_raised"},
		"fundingDeadline": {Column: "funding_deadline"},
		"minInvestment":   {Column: "min_investment"},
		"accreditedOnly":  {Column: "accredited_only"},
		"ownerId":         {Column: "owner_id"},
		"viewCount":       {Column: "view_count"},
		"favoriteCount":   {Column: "favorite_count"},
		"createdAt":       {Column: "created_at"},
	},
	Preloads: map[string]string{
		"owner":   "Owner",
		"updates": "Updates",
	},
}

// ProjectRepository implements project data operations
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	m := r.toModel(project)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	project.ID = m.ID
	project.CreatedAt = m.CreatedAt
	project.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a project by ID with its owner and update posts
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Preload("Owner").
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists project mutations
func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"title":            project.Title,
			"description":      project.Description,
			"funding_goal":     project.FundingGoal,
			"funding_raised":   project.FundingRaised,
			"funding_deadline": project.FundingDeadline,
			"status":           string(project.Status),
			"min_investment":   project.MinInvestment,
			"accredited_only":  project.AccreditedOnly,
			"address":          project.Location.Address,
			"latitude":         project.Location.Latitude,
			"longitude":        project.Location.Longitude,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus transitions a project's lifecycle status
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProjectStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Project{}).
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

// SoftDelete hides a project from all queries
func (r *ProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns projects matching the query with the total match count
func (r *ProjectRepository) List(ctx context.Context, q utils.ListQuery) ([]*entities.Project, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := projectListSpec.Filtered(db.Model(&models.Project{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Project
	if err := projectListSpec.Page(projectListSpec.Filtered(db.Model(&models.Project{}), q), q).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	projects := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		projects = append(projects, r.toEntity(&ms[i]))
	}
	return projects, total, nil
}

// IncrementViewCount bumps the project view counter
func (r *ProjectRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// RecountFavorites recomputes the favorite counter from user_favorites rows
func (r *ProjectRepository) RecountFavorites(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.WithContext(ctx).Model(&models.UserFavorite{}).
		Where("project_id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}

	return db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Update("favorite_count", count).Error
}

// AddUpdate persists an update post under a project
func (r *ProjectRepository) AddUpdate(ctx context.Context, update *entities.ProjectUpdate) error {
	m := &models.ProjectUpdate{
		ID:        update.ID,
		ProjectID: update.ProjectID,
		Title:     update.Title,
		Body:      update.Body,
		CreatedAt: time.Now(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	update.ID = m.ID
	update.CreatedAt = m.CreatedAt
	return nil
}

// UpdateImages replaces the project image keys
func (r *ProjectRepository) UpdateImages(ctx context.Context, id uuid.UUID, imageKeys []string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"image_keys": strings.Join(imageKeys, ","),
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

// ListExpiredActive returns active projects whose funding deadline has passed
func (r *ProjectRepository) ListExpiredActive(ctx context.Context, now time.Time, limit int) ([]*entities.Project, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Project
	if err := db.WithContext(ctx).
		Where("status = ? AND funding_deadline < ?", string(entities.ProjectStatusActive), now).
		Order("funding_deadline ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	projects := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		projects = append(projects, r.toEntity(&ms[i]))
	}
	return projects, nil
}

func (r *ProjectRepository) toModel(p *entities.Project) *models.Project {
	return &models.Project{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		FundingGoal:     p.FundingGoal,
		FundingRaised:   p.FundingRaised,
		FundingDeadline: p.FundingDeadline,
		Status:          string(p.Status),
		MinInvestment:   p.MinInvestment,
		AccreditedOnly:  p.AccreditedOnly,
		OwnerID:         p.OwnerID,
		Address:         p.Location.Address,
		Latitude:        p.Location.Latitude,
		Longitude:       p.Location.Longitude,
		ImageKeys:       strings.Join(p.ImageKeys, ","),
		ViewCount:       p.ViewCount,
		FavoriteCount:   p.FavoriteCount,
	}
}

func (r *ProjectRepository) toEntity(m *models.Project) *entities.Project {
	p := &entities.Project{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		FundingGoal:     m.FundingGoal,
		FundingRaised:   m.FundingRaised,
		FundingDeadline: m.FundingDeadline,
		Status:          entities.ProjectStatus(m.Status),
		MinInvestment:   m.MinInvestment,
		AccreditedOnly:  m.AccreditedOnly,
		OwnerID:         m.OwnerID,
		Location: entities.Location{
			Address:   m.Address,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		},
		ViewCount:     m.ViewCount,
		FavoriteCount: m.FavoriteCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.ImageKeys != "" {
		p.ImageKeys = strings.Split(m.ImageKeys, ",")
	}

	if m.Owner.ID != uuid.Nil {
		p.Owner = &entities.User{
			ID:    m.Owner.ID,
			Email: m.Owner.Email,
			Name:  m.Owner.Name,
			Role:  entities.UserRole(m.Owner.Role),
		}
	}

	for _, u := range m.Updates {
		p.Updates = append(p.Updates, entities.ProjectUpdate{
			ID:        u.ID,
			ProjectID: u.ProjectID,
			Title:     u.Title,
			Body:      u.Body,
			CreatedAt: u.CreatedAt,
		})
	}

	return p
}
