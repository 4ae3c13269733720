package service

import (
	"errors"
	"strings"
	"time"

	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"

	"gorm.io/gorm"
)

// 同一 slug 并发写入时的重试次数，冲突由数据库唯一索引兜底
const slugInsertRetries = 3

// ArticleService 文章业务逻辑
type ArticleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
}

// NewArticleService 创建文章服务
func NewArticleService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
) *ArticleService {
	return &ArticleService{articles: articles, categories: categories, tags: tags}
}

// CreateArticleInput 创建文章请求
type CreateArticleInput struct {
	Title      string
	Content    string
	Summary    string
	CategoryID *uint
	TagIDs     []uint
}

// UpdateArticleInput 更新文章请求（全量覆盖）
type UpdateArticleInput struct {
	Title      string
	Content    string
	Summary    string
	CategoryID *uint
	TagIDs     []uint
}

// ListArticlesInput 后台文章列表请求
type ListArticlesInput struct {
	Page       int
	PerPage    int
	Status     string
	CategoryID uint
	TagID      uint
	Search     string
}

// PublicListArticlesInput 前台文章列表请求
type PublicListArticlesInput struct {
	Page         int
	PerPage      int
	CategorySlug string
	TagSlug      string
	Search       string
}

// UpdateStatusInput 文章状态变更请求
type UpdateStatusInput struct {
	Status        string
	ReviewComment string
}

func (s *ArticleService) validateContent(title, content, summary string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewValidationError("title", "title is required")
	}
	if len(title) > constants.TitleMaxLength {
		return NewValidationError("title", "title is too long")
	}
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "content is required")
	}
	if len(summary) > constants.SummaryMaxLength {
		return NewValidationError("summary", "summary is too long")
	}
	return nil
}

// resolveCategory 校验分类存在性
func (s *ArticleService) resolveCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.GetByID(*categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return NewValidationError("category_id", "category does not exist")
	}
	return nil
}

// resolveTags 按 ID 批量解析标签，缺失任何一个即报错
func (s *ArticleService) resolveTags(tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	seen := make(map[uint]struct{}, len(tagIDs))
	unique := make([]uint, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	tags, err := s.tags.GetByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, NewValidationError("tag_ids", "one or more tags do not exist")
	}
	return tags, nil
}

// Create 创建文章，初始状态为草稿。slug 由标题生成，
// 并发冲突时依赖唯一索引报错后换后缀重试。
func (s *ArticleService) Create(principal Principal, input CreateArticleInput) (*models.Article, error) {
	if err := s.validateContent(input.Title, input.Content, input.Summary); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(input.CategoryID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	article := &models.Article{
		Title:      title,
		Content:    input.Content,
		Summary:    input.Summary,
		Status:     constants.ArticleStatusInProgress,
		AuthorID:   principal.UserID,
		CategoryID: input.CategoryID,
		Tags:       tags,
	}

	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		slug, err := GenerateSlug(title, func(candidate string) (bool, error) {
			count, err := s.articles.CountBySlug(candidate, nil)
			return count > 0, err
		})
		if err != nil {
			return nil, err
		}
		article.Slug = slug

		err = s.articles.Create(article)
		if err == nil {
			return s.articles.GetDetailByID(article.ID)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, ErrSlugExists
}

// Update 更新文章内容。标题变化时重新生成 slug，
// 基础字段与标签替换写在同一个事务里。
func (s *ArticleService) Update(principal Principal, id uint, input UpdateArticleInput) (*models.Article, error) {
	article, err := s.articles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if !principal.IsAdmin() && article.AuthorID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	if err := s.validateContent(input.Title, input.Content, input.Summary); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(input.CategoryID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title != article.Title {
		slug, err := GenerateSlug(title, func(candidate string) (bool, error) {
			count, err := s.articles.CountBySlug(candidate, &article.ID)
			return count > 0, err
		})
		if err != nil {
			return nil, err
		}
		article.Slug = slug
	}

	article.Title = title
	article.Content = input.Content
	article.Summary = input.Summary
	article.CategoryID = input.CategoryID

	if err := s.articles.UpdateWithTags(article, tags); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return s.articles.GetDetailByID(article.ID)
}

// UpdateStatus 变更文章状态。accepted/published 仅管理员可设置；
// 进入发布态时盖发布时间戳（重复发布会刷新），离开发布态时清空。
// 附带的审稿备注与状态变更写在同一个事务里。
func (s *ArticleService) UpdateStatus(principal Principal, id uint, input UpdateStatusInput) (*models.Article, error) {
	valid := false
	for _, status := range constants.ArticleStatuses {
		if status == input.Status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidStatus
	}

	article, err := s.articles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if !principal.IsAdmin() && article.AuthorID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if _, adminOnly := constants.AdminOnlyArticleStatuses[input.Status]; adminOnly && !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	article.Status = input.Status
	if input.Status == constants.ArticleStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	} else {
		article.PublishedAt = nil
	}

	var comment *models.Comment
	if text := strings.TrimSpace(input.ReviewComment); text != "" {
		comment = &models.Comment{
			ArticleID:       article.ID,
			UserID:          principal.UserID,
			Content:         text,
			IsReviewComment: true,
		}
	}

	if err := s.articles.UpdateStatusWithComment(article, comment); err != nil {
		return nil, err
	}
	return s.articles.GetDetailByID(article.ID)
}

// AttachImage 挂接题图路径
func (s *ArticleService) AttachImage(principal Principal, id uint, imagePath string) (*models.Article, error) {
	article, err := s.articles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if !principal.IsAdmin() && article.AuthorID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	article.FeaturedImage = imagePath
	if err := s.articles.Update(article); err != nil {
		return nil, err
	}
	return article, nil
}

// ListAdmin 后台文章列表。非管理员只能看到自己的文章。
func (s *ArticleService) ListAdmin(principal Principal, input ListArticlesInput) ([]models.Article, int64, error) {
	filter := repository.ArticleListFilter{
		Page:          input.Page,
		PerPage:       input.PerPage,
		Status:        input.Status,
		CategoryID:    input.CategoryID,
		TagID:         input.TagID,
		Search:        input.Search,
		WithRelations: true,
	}
	if !principal.IsAdmin() {
		filter.AuthorID = principal.UserID
	}
	return s.articles.List(filter)
}

// GetAdminByID 后台文章详情（含审稿备注），非管理员仅限本人文章
func (s *ArticleService) GetAdminByID(principal Principal, id uint) (*models.Article, error) {
	article, err := s.articles.GetDetailByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if !principal.IsAdmin() && article.AuthorID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return article, nil
}

// ListPublic 前台文章列表，仅已发布，按发布时间倒序
func (s *ArticleService) ListPublic(input PublicListArticlesInput) ([]models.Article, int64, error) {
	filter := repository.ArticleListFilter{
		Page:          input.Page,
		PerPage:       input.PerPage,
		CategorySlug:  input.CategorySlug,
		TagSlug:       input.TagSlug,
		Search:        input.Search,
		OnlyPublished: true,
		OrderBy:       "articles.published_at DESC, articles.id DESC",
		WithRelations: true,
	}
	return s.articles.List(filter)
}

// GetPublicBySlug 前台按 slug 获取已发布文章
func (s *ArticleService) GetPublicBySlug(slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}
