package services

import (
	"slices"

	"kakeibo/internal/models"
)

// categoryService serves the configured category suggestions.
type categoryService struct {
	categories []string
}

// NewCategoryService creates a CategoryServicer over the given list.
// An empty list falls back to the built-in suggestions.
func NewCategoryService(categories []string) CategoryServicer {
	if len(categories) == 0 {
		categories = models.SuggestedCategories
	}
	return &categoryService{categories: slices.Clone(categories)}
}

// SuggestedCategories returns a copy of the suggestion list in display order.
func (s *categoryService) SuggestedCategories() []string {
	return slices.Clone(s.categories)
}
