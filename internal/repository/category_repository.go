package repository

import (
	"errors"

	"github.com/inkstone-cms/internal/models"

	"gorm.io/gorm"
)

// ErrHasDependents 删除目标仍被文章引用
var ErrHasDependents = errors.New("repository: has dependent articles")

// CategoryWithCount 带文章数的分类行
type CategoryWithCount struct {
	models.Category
	ArticleCount int64 `gorm:"column:article_count" json:"article_count"`
}

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	ListWithArticleCounts() ([]CategoryWithCount, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	DeleteGuarded(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountArticles(categoryID uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListWithArticleCounts 分类列表，附带引用文章数
func (r *GormCategoryRepository) ListWithArticleCounts() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM articles WHERE articles.category_id = categories.id) AS article_count").
		Order("categories.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// DeleteGuarded 删除分类。删除与引用检查在同一条语句内完成，
// 检查与删除之间不存在挂接新文章的窗口。
func (r *GormCategoryRepository) DeleteGuarded(id uint) error {
	result := r.db.Exec(
		"DELETE FROM categories WHERE id = ? AND NOT EXISTS (SELECT 1 FROM articles WHERE articles.category_id = ?)",
		id, id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	refs, err := r.CountArticles(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrHasDependents
	}
	return gorm.ErrRecordNotFound
}

// CountByName 统计同名分类数量
func (r *GormCategoryRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySlug 统计 slug 数量
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountArticles 统计某分类下文章数
func (r *GormCategoryRepository) CountArticles(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Article{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
