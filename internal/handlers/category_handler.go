package handlers

import (
	"net/http"

	"explore-with-me/internal/models"
	"explore-with-me/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory creates a category
// POST /admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.NewCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category
// PATCH /admin/categories/:catId
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "catId")
	if !ok {
		return
	}

	var req models.NewCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category
// DELETE /admin/categories/:catId
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "catId")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCategories lists categories
// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	from, size := parsePaging(c)

	categories, err := h.categoryService.GetCategories(c.Request.Context(), from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a category by ID
// GET /categories/:catId
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "catId")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}
