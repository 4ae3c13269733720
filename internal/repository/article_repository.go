package repository

import (
	"errors"
	"strings"

	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository 文章数据访问接口
type ArticleRepository interface {
	List(filter ArticleListFilter) ([]models.Article, int64, error)
	GetByID(id uint) (*models.Article, error)
	GetDetailByID(id uint) (*models.Article, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Article, error)
	Create(article *models.Article) error
	Update(article *models.Article) error
	UpdateWithTags(article *models.Article, tags []models.Tag) error
	UpdateStatusWithComment(article *models.Article, comment *models.Comment) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormArticleRepository GORM 实现
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository 创建文章仓库
func NewArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// List 文章列表（过滤 + 搜索 + 排序 + 分页）
func (r *GormArticleRepository) List(filter ArticleListFilter) ([]models.Article, int64, error) {
	query := r.db.Model(&models.Article{})

	if filter.OnlyPublished {
		query = query.Where("articles.status = ?", constants.ArticleStatusPublished)
	} else if filter.Status != "" {
		query = query.Where("articles.status = ?", filter.Status)
	}
	if filter.AuthorID > 0 {
		query = query.Where("articles.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("articles.category_id = ?", filter.CategoryID)
	}
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Where("articles.category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", slug))
	}
	// 标签过滤使用子查询，连接产生的重复行不会进入结果集
	if filter.TagID > 0 || strings.TrimSpace(filter.TagSlug) != "" {
		tagged := r.db.Table("article_tags").
			Select("article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id")
		if filter.TagID > 0 {
			tagged = tagged.Where("tags.id = ?", filter.TagID)
		} else {
			tagged = tagged.Where("tags.slug = ?", strings.TrimSpace(filter.TagSlug))
		}
		query = query.Where("articles.id IN (?)", tagged)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchCondition(r.db,
			[]string{"articles.title", "articles.content", "articles.summary"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PerPage)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "articles.created_at DESC, articles.id DESC"
	}
	query = query.Order(orderBy)

	if filter.WithRelations {
		query = query.Preload("Author.Role").Preload("Category").Preload("Tags")
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// GetByID 根据 ID 获取文章（不含关联）
func (r *GormArticleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// GetDetailByID 根据 ID 获取文章及全部关联（作者/分类/标签/评论）
func (r *GormArticleRepository) GetDetailByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Author.Role").
		Preload("Category").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// GetBySlug 根据 slug 获取文章
func (r *GormArticleRepository) GetBySlug(slug string, onlyPublished bool) (*models.Article, error) {
	query := r.db.Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("status = ?", constants.ArticleStatusPublished)
	}

	var article models.Article
	err := query.
		Preload("Author.Role").
		Preload("Category").
		Preload("Tags").
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// Create 创建文章（连同标签关联一并写入）
func (r *GormArticleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// Update 更新文章基础字段
func (r *GormArticleRepository) Update(article *models.Article) error {
	return r.db.Omit("Tags", "Comments", "Author", "Category").Save(article).Error
}

// UpdateStatusWithComment 在单个事务内更新状态并追加审稿备注，
// 任一步失败则整体回滚。
func (r *GormArticleRepository) UpdateStatusWithComment(article *models.Article, comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":       article.Status,
			"published_at": article.PublishedAt,
		}
		if err := tx.Model(&models.Article{}).Where("id = ?", article.ID).Updates(updates).Error; err != nil {
			return err
		}
		if comment != nil {
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithTags 在单个事务内更新文章基础字段并整体替换标签集合，
// 任一步失败则整体回滚。
func (r *GormArticleRepository) UpdateWithTags(article *models.Article, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Comments", "Author", "Category").Save(article).Error; err != nil {
			return err
		}
		return tx.Model(article).Association("Tags").Replace(tags)
	})
}

// CountBySlug 统计 slug 数量
func (r *GormArticleRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
