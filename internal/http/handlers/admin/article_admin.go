package admin

import (
	"errors"
	"strconv"

	"github.com/inkstone-cms/internal/http/response"
	"github.com/inkstone-cms/internal/metrics"
	"github.com/inkstone-cms/internal/repository"
	"github.com/inkstone-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// ArticleUpsertRequest 文章创建/更新请求
type ArticleUpsertRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Summary    string `json:"summary"`
	CategoryID *uint  `json:"category_id"`
	TagIDs     []uint `json:"tag_ids"`
}

// ArticleStatusRequest 文章状态变更请求
type ArticleStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	ReviewComment string `json:"comment"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// respondArticleError 文章业务错误统一映射
func respondArticleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, response.CodeBadRequest, verr.Error(), nil)
	case errors.Is(err, service.ErrInvalidTitle):
		respondError(c, response.CodeBadRequest, "title cannot produce a valid slug", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(c, response.CodeBadRequest, "invalid article status", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, "slug already exists", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "article not found", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, response.CodeForbidden, "permission denied", nil)
	default:
		respondError(c, response.CodeInternal, "article operation failed", err)
	}
}

// GetAdminArticles 后台文章列表（非管理员仅见本人文章）
func (h *Handler) GetAdminArticles(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	page, perPage = normalizePagination(page, perPage)

	input := service.ListArticlesInput{
		Page:    page,
		PerPage: perPage,
		Status:  c.Query("status"),
		Search:  c.Query("search"),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid category_id", err)
			return
		}
		input.CategoryID = uint(id)
	}
	if raw := c.Query("tag_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid tag_id", err)
			return
		}
		input.TagID = uint(id)
	}

	articles, total, err := h.ArticleService.ListAdmin(principal, input)
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

// GetAdminArticle 后台文章详情（含审稿备注）
func (h *Handler) GetAdminArticle(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	article, err := h.ArticleService.GetAdminByID(principal, id)
	if err != nil {
		respondArticleError(c, err)
		return
	}
	response.Success(c, article)
}

// CreateArticle 创建文章
func (h *Handler) CreateArticle(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req ArticleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	article, err := h.ArticleService.Create(principal, service.CreateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		Summary:    req.Summary,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		respondArticleError(c, err)
		return
	}

	requestLog(c).Infow("article_created",
		"article_id", article.ID,
		"slug", article.Slug,
		"author_id", principal.UserID,
	)
	response.Success(c, article)
}

// UpdateArticle 更新文章内容
func (h *Handler) UpdateArticle(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ArticleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	article, err := h.ArticleService.Update(principal, id, service.UpdateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		Summary:    req.Summary,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		respondArticleError(c, err)
		return
	}
	response.Success(c, article)
}

// UpdateArticleStatus 变更文章状态，可附带审稿备注
func (h *Handler) UpdateArticleStatus(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ArticleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	article, err := h.ArticleService.UpdateStatus(principal, id, service.UpdateStatusInput{
		Status:        req.Status,
		ReviewComment: req.ReviewComment,
	})
	if err != nil {
		respondArticleError(c, err)
		return
	}

	metrics.ArticleStatusTransitions.WithLabelValues(article.Status).Inc()
	requestLog(c).Infow("article_status_changed",
		"article_id", article.ID,
		"status", article.Status,
		"operator_id", principal.UserID,
	)
	response.Success(c, article)
}

// UploadArticleImage 上传并挂接题图
func (h *Handler) UploadArticleImage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}

	path, err := h.UploadService.SaveFile(file, "article")
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondError(c, response.CodeBadRequest, verr.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "upload failed", err)
		return
	}

	article, err := h.ArticleService.AttachImage(principal, id, path)
	if err != nil {
		respondArticleError(c, err)
		return
	}
	response.Success(c, article)
}
