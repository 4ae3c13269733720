package public

import (
	"errors"
	"strconv"

	"github.com/inkstone-cms/internal/http/response"
	"github.com/inkstone-cms/internal/repository"
	"github.com/inkstone-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// GetArticles 前台文章列表，仅已发布，按发布时间倒序
func (h *Handler) GetArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	page, perPage = normalizePagination(page, perPage)

	articles, total, err := h.ArticleService.ListPublic(service.PublicListArticlesInput{
		Page:         page,
		PerPage:      perPage,
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "article list failed", err)
		return
	}

	response.SuccessWithPage(c, articles, response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: repository.TotalPages(total, perPage),
	})
}

// GetArticleBySlug 前台按 slug 获取已发布文章
func (h *Handler) GetArticleBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		respondError(c, response.CodeBadRequest, "slug is required", nil)
		return
	}

	article, err := h.ArticleService.GetPublicBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "article not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "article fetch failed", err)
		return
	}
	response.Success(c, article)
}
