package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/services"
)

// CategoryHandler serves the category suggestions.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoriesResponse lists the suggested categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ListCategories returns the suggested categories
// @Summary     List suggested categories
// @Description Categories offered when entering a purchase. Purchases may use any category.
// @Tags        categories
// @Produce     json
// @Success     200 {object} CategoriesResponse
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Categories: h.categoryService.SuggestedCategories()})
}
