package repository

import (
	"errors"

	"github.com/inkstone-cms/internal/models"

	"gorm.io/gorm"
)

// TagWithCount 带文章数的标签行
type TagWithCount struct {
	models.Tag
	ArticleCount int64 `gorm:"column:article_count" json:"article_count"`
}

// TagRepository 标签数据访问接口
type TagRepository interface {
	List() ([]models.Tag, error)
	ListWithArticleCounts() ([]TagWithCount, error)
	GetByID(id uint) (*models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	DeleteGuarded(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountArticles(tagID uint) (int64, error)
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// List 标签列表
func (r *GormTagRepository) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListWithArticleCounts 标签列表，附带引用文章数
func (r *GormTagRepository) ListWithArticleCounts() ([]TagWithCount, error) {
	var rows []TagWithCount
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, (SELECT COUNT(*) FROM article_tags WHERE article_tags.tag_id = tags.id) AS article_count").
		Order("tags.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID 根据 ID 获取标签
func (r *GormTagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByIDs 批量获取标签
func (r *GormTagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Create 创建标签
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update 更新标签
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// DeleteGuarded 删除标签，引用检查与删除在同一条语句内完成
func (r *GormTagRepository) DeleteGuarded(id uint) error {
	result := r.db.Exec(
		"DELETE FROM tags WHERE id = ? AND NOT EXISTS (SELECT 1 FROM article_tags WHERE article_tags.tag_id = ?)",
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

// CountByName 统计同名标签数量
func (r *GormTagRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Tag{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySlug 统计 slug 数量
func (r *GormTagRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Tag{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountArticles 统计引用该标签的文章数
func (r *GormTagRepository) CountArticles(tagID uint) (int64, error) {
	var count int64
	if err := r.db.Table("article_tags").Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
