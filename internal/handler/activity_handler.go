package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace-board-api/internal/response"
	"workspace-board-api/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ListActivity godoc
// @Summary      Workspace activity feed
// @Description  Lists board mutations for a workspace, newest first
// @Tags         activity
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ActivityResponse}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{workspaceId}/activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	workspaceID, ok := workspaceIDFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.activityService.ListActivity(c.Request.Context(), workspaceID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entries)
}
