package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/response"
	"workspace-board-api/internal/service"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
	}
}

// actorFrom extracts the authenticated user from the request context
func actorFrom(c *gin.Context) (service.Actor, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return service.Actor{}, false
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return service.Actor{}, false
	}
	name := c.GetString("user_name")
	if name == "" {
		name = "Unknown"
	}
	return service.Actor{ID: id, Name: name}, true
}

// workspaceIDFrom parses the workspaceId path parameter
func workspaceIDFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workspace ID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateWorkspace godoc
// @Summary      Create a workspace
// @Description  Creates a workspace with the configured column set
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateWorkspaceRequest true "Workspace creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       / [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, workspace)
}

// ListWorkspaces godoc
// @Summary      List workspaces
// @Description  Lists the workspaces owned by the authenticated user
// @Tags         workspaces
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.WorkspaceSummaryResponse}
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       / [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, workspaces)
}

// GetWorkspace godoc
// @Summary      Get a workspace
// @Description  Returns a workspace with its full column document
// @Tags         workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{workspaceId} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFrom(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), actor, workspaceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, workspace)
}

// DeleteWorkspace godoc
// @Summary      Delete a workspace
// @Description  Deletes a workspace. Owner only.
// @Tags         workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{workspaceId} [delete]
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFrom(c)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), actor, workspaceID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// AddCard godoc
// @Summary      Add a book card
// @Description  Adds a book card to a column. Adding a book already on the board is a success no-op.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        request body dto.AddCardRequest true "Card addition request"
// @Success      201 {object} response.SuccessResponse{data=dto.AddCardResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{workspaceId}/cards [post]
func (h *WorkspaceHandler) AddCard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFrom(c)
	if !ok {
		return
	}

	var req dto.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.workspaceService.AddCard(c.Request.Context(), actor, workspaceID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	response.SendSuccess(c, status, result)
}

// MoveCard godoc
// @Summary      Move a card
// @Description  Moves a card between columns or within a column. Destination indices beyond the column length are clamped.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        request body dto.MoveCardRequest true "Card move request"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{workspaceId}/cards/move [put]
func (h *WorkspaceHandler) MoveCard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFrom(c)
	if !ok {
		return
	}

	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	workspace, err := h.workspaceService.MoveCard(c.Request.Context(), actor, workspaceID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, workspace)
}

// DeleteCard godoc
// @Summary      Delete a card
// @Description  Removes a card from a column
// @Tags         cards
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        columnId path string true "Column ID"
// @Param        cardId path string true "Card ID"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{workspaceId}/columns/{columnId}/cards/{cardId} [delete]
func (h *WorkspaceHandler) DeleteCard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	workspaceID, ok := workspaceIDFrom(c)
	if !ok {
		return
	}

	columnID := c.Param("columnId")
	cardID := c.Param("cardId")
	if columnID == "" || cardID == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Column ID and card ID are required")
		return
	}

	workspace, err := h.workspaceService.DeleteCard(c.Request.Context(), actor, workspaceID, columnID, cardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, workspace)
}
