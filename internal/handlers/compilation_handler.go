package handlers

import (
	"net/http"

	"explore-with-me/internal/models"
	"explore-with-me/internal/services"

	"github.com/gin-gonic/gin"
)

type CompilationHandler struct {
	compilationService *services.CompilationService
}

func NewCompilationHandler(compilationService *services.CompilationService) *CompilationHandler {
	return &CompilationHandler{
		compilationService: compilationService,
	}
}

// CreateCompilation creates a compilation
// POST /admin/compilations
func (h *CompilationHandler) CreateCompilation(c *gin.Context) {
	var req models.NewCompilationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	compilation, err := h.compilationService.CreateCompilation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, compilation)
}

// UpdateCompilation updates a compilation
// PATCH /admin/compilations/:compId
func (h *CompilationHandler) UpdateCompilation(c *gin.Context) {
	compID, ok := parseUintParam(c, "compId")
	if !ok {
		return
	}

	var req models.UpdateCompilationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	compilation, err := h.compilationService.UpdateCompilation(c.Request.Context(), compID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, compilation)
}

// DeleteCompilation removes a compilation
// DELETE /admin/compilations/:compId
func (h *CompilationHandler) DeleteCompilation(c *gin.Context) {
	compID, ok := parseUintParam(c, "compId")
	if !ok {
		return
	}

	if err := h.compilationService.DeleteCompilation(c.Request.Context(), compID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCompilations lists compilations
// GET /compilations
func (h *CompilationHandler) GetCompilations(c *gin.Context) {
	from, size := parsePaging(c)

	var pinned *bool
	if pinnedStr := c.Query("pinned"); pinnedStr != "" {
		value := pinnedStr == "true"
		pinned = &value
	}

	compilations, err := h.compilationService.GetCompilations(c.Request.Context(), pinned, from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, compilations)
}

// GetCompilation retrieves a compilation by ID
// GET /compilations/:compId
func (h *CompilationHandler) GetCompilation(c *gin.Context) {
	compID, ok := parseUintParam(c, "compId")
	if !ok {
		return
	}

	compilation, err := h.compilationService.GetCompilation(c.Request.Context(), compID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, compilation)
}
