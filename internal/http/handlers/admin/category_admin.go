package admin

import (
	"errors"

	"github.com/inkstone-cms/internal/http/response"
	"github.com/inkstone-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryUpsertRequest 分类创建/更新请求
type CategoryUpsertRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func respondTaxonomyError(c *gin.Context, err error, kind string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, response.CodeBadRequest, verr.Error(), nil)
	case errors.Is(err, service.ErrInvalidTitle):
		respondError(c, response.CodeBadRequest, "name cannot produce a valid slug", nil)
	case errors.Is(err, service.ErrNameExists):
		respondError(c, response.CodeConflict, kind+" name already exists", nil)
	case errors.Is(err, service.ErrCategoryInUse), errors.Is(err, service.ErrTagInUse):
		respondError(c, response.CodeConflict, kind+" is still referenced by articles", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, kind+" not found", nil)
	default:
		respondError(c, response.CodeInternal, kind+" operation failed", err)
	}
}

// GetAdminCategories 分类列表（含文章数）
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondTaxonomyError(c, err, "category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondTaxonomyError(c, err, "category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍被引用时返回冲突
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		respondTaxonomyError(c, err, "category")
		return
	}
	response.Success(c, nil)
}
