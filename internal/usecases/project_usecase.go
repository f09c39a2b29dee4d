package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/domain/repositories"
	"brickvest.backend/pkg/logger"
	"brickvest.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageUpload is one image file arriving with a project images request
type ImageUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// ProjectUsecase handles project lifecycle business logic
type ProjectUsecase struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
	geocoder    AddressGeocoder
	storage     FileStorage
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	geocoder AddressGeocoder,
	storage FileStorage,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		uow:         uow,
		geocoder:    geocoder,
		storage:     storage,
	}
}

// CreateProject creates a project owned by the requesting manager
func (u *ProjectUsecase) CreateProject(ctx context.Context, ownerID uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	goal, err := parsePositiveDecimal(input.FundingGoal, "fundingGoal")
	if err != nil {
		return nil, err
	}
	minInvestment, err := parsePositiveDecimal(input.MinInvestment, "minInvestment")
	if err != nil {
		return nil, err
	}
	if input.FundingDeadline.Before(time.Now()) {
		return nil, domainerrors.BadRequest("fundingDeadline must be in the future")
	}

	location, err := u.resolveLocation(ctx, input.Address)
	if err != nil {
		return nil, err
	}

	status := entities.ProjectStatusDraft
	if input.Status != "" {
		status = entities.ProjectStatus(normalizeEnum(input.Status))
	}

	project := &entities.Project{
		ID:              uuid.New(),
		Title:           input.Title,
		Description:     input.Description,
		FundingGoal:     goal,
		FundingDeadline: input.FundingDeadline,
		Status:          status,
		MinInvestment:   minInvestment,
		AccreditedOnly:  input.AccreditedOnly,
		OwnerID:         ownerID,
		Location:        *location,
	}
	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns one project and counts the view
func (u *ProjectUsecase) GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A failed counter bump never fails the read.
	if err := u.projectRepo.IncrementViewCount(ctx, id); err != nil {
		logger.Warn(ctx, "view count increment failed", zap.String("project_id", id.String()), zap.Error(err))
	} else {
		project.ViewCount++
	}
	return project, nil
}

// ListProjects returns projects matching the query
func (u *ProjectUsecase) ListProjects(ctx context.Context, q utils.ListQuery) ([]*entities.Project, int64, error) {
	return u.projectRepo.List(ctx, q)
}

// UpdateProject applies a partial update, owner-or-admin only
func (u *ProjectUsecase) UpdateProject(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error) {
	project, err := u.authorizeMutation(ctx, requesterID, requesterRole, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.FundingGoal != nil {
		goal, err := parsePositiveDecimal(*input.FundingGoal, "fundingGoal")
		if err != nil {
			return nil, err
		}
		project.FundingGoal = goal
	}
	if input.FundingDeadline != nil {
		project.FundingDeadline = *input.FundingDeadline
	}
	if input.MinInvestment != nil {
		minInvestment, err := parsePositiveDecimal(*input.MinInvestment, "minInvestment")
		if err != nil {
			return nil, err
		}
		project.MinInvestment = minInvestment
	}
	if input.AccreditedOnly != nil {
		project.AccreditedOnly = *input.AccreditedOnly
	}
	if input.Address != nil && *input.Address != project.Location.Address {
		location, err := u.resolveLocation(ctx, *input.Address)
		if err != nil {
			return nil, err
		}
		project.Location = *location
	}
	if input.Status != nil {
		project.Status = entities.ProjectStatus(normalizeEnum(*input.Status))
	}

	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject soft-deletes a project, owner-or-admin only
func (u *ProjectUsecase) DeleteProject(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) error {
	if _, err := u.authorizeMutation(ctx, requesterID, requesterRole, id); err != nil {
		return err
	}
	return u.projectRepo.SoftDelete(ctx, id)
}

// UploadImages stores the uploaded images and replaces the project's image
// key list, owner-or-admin only.
func (u *ProjectUsecase) UploadImages(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID, uploads []ImageUpload) (*entities.Project, error) {
	project, err := u.authorizeMutation(ctx, requesterID, requesterRole, id)
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, domainerrors.BadRequest("no images provided")
	}

	keys := make([]string, 0, len(uploads))
	for _, up := range uploads {
		key := fmt.Sprintf("projects/%s/%s_%s", id, uuid.NewString()[:8], up.FileName)
		if err := u.storage.Upload(ctx, key, up.Body, up.ContentType); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err := u.projectRepo.UpdateImages(ctx, id, keys); err != nil {
		return nil, err
	}
	project.ImageKeys = keys
	return project, nil
}

// AddProjectUpdate posts an update under a project, owner-or-admin only
func (u *ProjectUsecase) AddProjectUpdate(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID, input *entities.CreateProjectUpdateInput) (*entities.ProjectUpdate, error) {
	if _, err := u.authorizeMutation(ctx, requesterID, requesterRole, id); err != nil {
		return nil, err
	}

	update := &entities.ProjectUpdate{
		ID:        uuid.New(),
		ProjectID: id,
		Title:     input.Title,
		Body:      input.Body,
	}
	if err := u.projectRepo.AddUpdate(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

// FavoriteProject records a favorite and recomputes the counter in one
// transaction.
func (u *ProjectUsecase) FavoriteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := u.projectRepo.GetByID(ctx, projectID); err != nil {
		return err
	}
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.AddFavorite(txCtx, userID, projectID); err != nil {
			return err
		}
		return u.projectRepo.RecountFavorites(txCtx, projectID)
	})
}

// UnfavoriteProject removes a favorite and recomputes the counter
func (u *ProjectUsecase) UnfavoriteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.RemoveFavorite(txCtx, userID, projectID); err != nil {
			return err
		}
		return u.projectRepo.RecountFavorites(txCtx, projectID)
	})
}

func (u *ProjectUsecase) authorizeMutation(ctx context.Context, requesterID uuid.UUID, requesterRole entities.UserRole, id uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != requesterID && requesterRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not the project owner")
	}
	return project, nil
}

// resolveLocation geocodes the address. A provider outage is non-fatal: the
// project keeps its address without coordinates and a warning is logged. An
// address the provider looked at and could not match is still rejected.
func (u *ProjectUsecase) resolveLocation(ctx context.Context, address string) (*entities.Location, error) {
	result, err := u.geocoder.Lookup(ctx, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidInput) {
			return nil, err
		}
		logger.Warn(ctx, "geocoder unavailable, storing address without coordinates",
			zap.String("address", address), zap.Error(err))
		return &entities.Location{Address: address}, nil
	}
	return &entities.Location{
		Address:   address,
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
	}, nil
}
