package admin

import (
	"github.com/inkstone-cms/internal/http/response"
	"github.com/inkstone-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// TagUpsertRequest 标签创建/更新请求
type TagUpsertRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetAdminTags 标签列表（含文章数）
func (h *Handler) GetAdminTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "tag list failed", err)
		return
	}
	response.Success(c, tags)
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req TagUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	tag, err := h.TagService.Create(service.TagInput{Name: req.Name})
	if err != nil {
		respondTaxonomyError(c, err, "tag")
		return
	}
	response.Success(c, tag)
}

// UpdateTag 更新标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TagUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	tag, err := h.TagService.Update(id, service.TagInput{Name: req.Name})
	if err != nil {
		respondTaxonomyError(c, err, "tag")
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签，仍被引用时返回冲突
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.TagService.Delete(id); err != nil {
		respondTaxonomyError(c, err, "tag")
		return
	}
	response.Success(c, nil)
}
