package handlers

import (
	"fmt"
	"net/http"

	"brickvest.backend/internal/domain/entities"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/internal/interfaces/http/middleware"
	"brickvest.backend/internal/interfaces/http/response"
	"brickvest.backend/internal/usecases"
	"brickvest.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectUsecase *usecases.ProjectUsecase
	maxUploadBytes int64
}

// NewProjectHandler creates a new project handler. maxUploadBytes caps each
// image upload and comes from MAX_UPLOAD_BYTES.
func NewProjectHandler(projectUsecase *usecases.ProjectUsecase, maxUploadBytes int64) *ProjectHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &ProjectHandler{projectUsecase: projectUsecase, maxUploadBytes: maxUploadBytes}
}

// Create handles project creation
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, err := h.projectUsecase.CreateProject(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, project)
}

// Get returns one project
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project id"))
		return
	}

	project, err := h.projectUsecase.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// List returns projects matching the query string
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	q := utils.ParseListQuery(c.Request.URL.Query())

	projects, total, err := h.projectUsecase.ListProjects(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, projects, total, q.Page, q.Limit)
}

// Update applies a partial update to a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, err := h.projectUsecase.UpdateProject(c.Request.Context(), userID, role, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// Delete soft-deletes a project
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectUsecase.DeleteProject(c.Request.Context(), userID, role, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "project deleted")
}

// UploadImages stores uploaded project images
// PUT /api/projects/:id/images
func (h *ProjectHandler) UploadImages(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("multipart form required"))
		return
	}

	files := form.File["images"]
	uploads := make([]usecases.ImageUpload, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxUploadBytes {
			response.Error(c, domainerrors.BadRequest(fmt.Sprintf("image exceeds the %d byte upload limit", h.maxUploadBytes)))
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Error(c, domainerrors.BadRequest("unreadable upload"))
			return
		}
		defer f.Close()
		uploads = append(uploads, usecases.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	project, err := h.projectUsecase.UploadImages(c.Request.Context(), userID, role, id, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// AddUpdate posts a progress update under a project
// POST /api/projects/:id/updates
func (h *ProjectHandler) AddUpdate(c *gin.Context) {
	userID, role, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreateProjectUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	update, err := h.projectUsecase.AddProjectUpdate(c.Request.Context(), userID, role, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, update)
}

// Favorite bookmarks a project for the authenticated user
// POST /api/projects/:id/favorite
func (h *ProjectHandler) Favorite(c *gin.Context) {
	userID, _, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectUsecase.FavoriteProject(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "project favorited")
}

// Unfavorite removes a bookmark
// DELETE /api/projects/:id/favorite
func (h *ProjectHandler) Unfavorite(c *gin.Context) {
	userID, _, id, err := requesterAndID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectUsecase.UnfavoriteProject(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "project unfavorited")
}

// requesterAndID pulls the authenticated identity and the :id path param
func requesterAndID(c *gin.Context) (uuid.UUID, entities.UserRole, uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", uuid.Nil, domainerrors.Unauthorized("not authenticated")
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, "", uuid.Nil, domainerrors.BadRequest("invalid id")
	}
	return userID, role, id, nil
}
