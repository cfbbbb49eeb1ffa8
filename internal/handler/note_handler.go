package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/response"
	"workspace-board-api/internal/service"
)

type NoteHandler struct {
	noteService service.NoteService
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// CreateNote godoc
// @Summary      Create a research note
// @Description  Creates a research note for a catalog book, optionally attached to a workspace
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateNoteRequest true "Note to create"
// @Success      201 {object} response.SuccessResponse{data=dto.NoteResponse}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       / [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, note)
}

// ListNotesByBook godoc
// @Summary      List notes for a book
// @Description  Lists the research notes for a catalog book, newest first
// @Tags         notes
// @Produce      json
// @Param        volumeId path string true "Catalog volume id"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {object} response.SuccessResponse{data=[]dto.NoteResponse}
// @Router       /book/{volumeId} [get]
func (h *NoteHandler) ListNotesByBook(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notes, err := h.noteService.ListNotesByBook(c.Request.Context(), c.Param("volumeId"), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, notes)
}

// UpdateNote godoc
// @Summary      Update a research note
// @Description  Applies a partial update to a note. Only the author may edit.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Param        request body dto.UpdateNoteRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.NoteResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{noteId} [patch]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid note ID")
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), actor, noteID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, note)
}

// DeleteNote godoc
// @Summary      Delete a research note
// @Description  Deletes a note. Only the author may delete.
// @Tags         notes
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /{noteId} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid note ID")
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), actor, noteID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
