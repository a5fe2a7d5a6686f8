package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketbudget/internal/models"
)

// CategoryResponse describes one expense category.
type CategoryResponse struct {
	Name  models.Category `json:"name"`
	Label string          `json:"label"`
	Tone  string          `json:"tone"`
}

// CategoryHandler serves the fixed set of expense categories.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories lists the categories an expense may carry.
// @Summary     List categories
// @Description The closed set of expense categories with their badge tone
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  CategoryResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	all := models.Categories()
	out := make([]CategoryResponse, 0, len(all))
	for _, cat := range all {
		out = append(out, CategoryResponse{Name: cat, Label: cat.Label(), Tone: cat.Tone()})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}
