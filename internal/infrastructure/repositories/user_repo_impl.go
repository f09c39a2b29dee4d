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

var userListSpec = ListSpec{
	Fields: map[string]FieldDef{
		"email":               {Column: "email"},
		"name":                {Column: "name"},
		"role":                {Column: "role", Upper: true},
		"accreditationStatus": {Column: "accreditation_status", Upper: true},
		"emailVerified":       {Column: "email_verified"},
		"createdAt":           {Column: "created_at"},
	},
}

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := r.toModel(user)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists profile mutations
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":                user.Email,
			"name":                 user.Name,
			"password_hash":        user.PasswordHash,
			"role":                 string(user.Role),
			"accreditation_status": string(user.AccreditationStatus),
			"payment_customer_id":  user.PaymentCustomerID,
			"email_verified":       user.EmailVerified,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a user permanently (admin destructive removal)
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns users matching the query with the total match count
func (r *UserRepository) List(ctx context.Context, q utils.ListQuery) ([]*entities.User, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := userListSpec.Filtered(db.Model(&models.User{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.User
	if err := userListSpec.Page(userListSpec.Filtered(db.Model(&models.User{}), q), q).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, total, nil
}

// AddFavorite records a favorite-project reference
func (r *UserRepository) AddFavorite(ctx context.Context, userID, projectID uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.WithContext(ctx).Model(&models.UserFavorite{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrAlreadyExists
	}

	return db.WithContext(ctx).Create(&models.UserFavorite{
		UserID:    userID,
		ProjectID: projectID,
		CreatedAt: time.Now(),
	}).Error
}

// RemoveFavorite deletes a favorite-project reference
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, projectID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.UserFavorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListFavoriteIDs returns the project IDs favorited by a user
func (r *UserRepository) ListFavoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := GetDB(ctx, r.db)
	var favorites []models.UserFavorite
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ProjectID)
	}
	return ids, nil
}

func (r *UserRepository) toModel(u *entities.User) *models.User {
	return &models.User{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		PasswordHash:        u.PasswordHash,
		Role:                string(u.Role),
		AccreditationStatus: string(u.AccreditationStatus),
		PaymentCustomerID:   u.PaymentCustomerID,
		EmailVerified:       u.EmailVerified,
	}
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                  m.ID,
		Email:               m.Email,
		Name:                m.Name,
		PasswordHash:        m.PasswordHash,
		Role:                entities.UserRole(m.Role),
		AccreditationStatus: entities.AccreditationStatus(m.AccreditationStatus),
		PaymentCustomerID:   m.PaymentCustomerID,
		EmailVerified:       m.EmailVerified,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
