package public

import (
	"github.com/inkstone-cms/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCategories 前台分类列表（含文章数）
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}

// GetTags 前台标签列表（含文章数）
func (h *Handler) GetTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "tag list failed", err)
		return
	}
	response.Success(c, tags)
}
