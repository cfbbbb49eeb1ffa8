package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/response"
	"workspace-board-api/internal/service"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// SearchBooks godoc
// @Summary      Search the catalog
// @Description  Searches the book catalog with optional year, subject and availability filters
// @Tags         books
// @Produce      json
// @Param        q query string true "Search query"
// @Param        maxResults query int false "Maximum results (1-40)"
// @Param        yearFrom query int false "Earliest publication year"
// @Param        yearTo query int false "Latest publication year"
// @Param        subject query string false "Subject filter"
// @Param        readable query bool false "Only books with a preview"
// @Success      200 {object} response.SuccessResponse{data=dto.SearchBooksResponse}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid search parameters")
		return
	}

	result, err := h.bookService.Search(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// SaveBook godoc
// @Summary      Save a book
// @Description  Saves a catalog book to the library. Saving the same book twice returns the existing entry.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveBookRequest true "Book to save"
// @Success      201 {object} response.SuccessResponse{data=dto.SavedBookResponse}
// @Failure      400 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       / [post]
func (h *BookHandler) SaveBook(c *gin.Context) {
	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	book, err := h.bookService.SaveBook(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, book)
}

// ListSavedBooks godoc
// @Summary      List saved books
// @Description  Lists the saved library, newest first
// @Tags         books
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {object} response.SuccessResponse{data=[]dto.SavedBookResponse}
// @Security     BearerAuth
// @Router       / [get]
func (h *BookHandler) ListSavedBooks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	books, err := h.bookService.ListSavedBooks(c.Request.Context(), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, books)
}

// CacheStats godoc
// @Summary      Catalog cache statistics
// @Description  Reports catalog cache entry counts and accumulated hits
// @Tags         books
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=repository.CacheStats}
// @Security     BearerAuth
// @Router       /cache/stats [get]
func (h *BookHandler) CacheStats(c *gin.Context) {
	stats, err := h.bookService.CacheStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}
