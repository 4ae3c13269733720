package service

import (
	"errors"
	"strings"

	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"

	"gorm.io/gorm"
)

// TagService 标签业务逻辑
type TagService struct {
	tags repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// TagInput 创建/更新标签请求
type TagInput struct {
	Name string
}

// List 标签列表（含文章数）
func (s *TagService) List() ([]repository.TagWithCount, error) {
	return s.tags.ListWithArticleCounts()
}

// GetByID 标签详情
func (s *TagService) GetByID(id uint) (*models.Tag, error) {
	tag, err := s.tags.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Create 创建标签，名称区分大小写唯一
func (s *TagService) Create(input TagInput) (*models.Tag, error) {
	if err := validateTaxonomyName(input.Name); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)

	count, err := s.tags.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameExists
	}

	slug, err := GenerateSlug(name, func(candidate string) (bool, error) {
		n, err := s.tags.CountBySlug(candidate, nil)
		return n > 0, err
	})
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name, Slug: slug}
	if err := s.tags.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameExists
		}
		return nil, err
	}
	return tag, nil
}

// Update 更新标签，名称变化时重新派生 slug
func (s *TagService) Update(id uint, input TagInput) (*models.Tag, error) {
	tag, err := s.tags.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}

	if err := validateTaxonomyName(input.Name); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)

	if name != tag.Name {
		count, err := s.tags.CountByName(name, &tag.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrNameExists
		}
		slug, err := GenerateSlug(name, func(candidate string) (bool, error) {
			n, err := s.tags.CountBySlug(candidate, &tag.ID)
			return n > 0, err
		})
		if err != nil {
			return nil, err
		}
		tag.Slug = slug
	}

	tag.Name = name
	if err := s.tags.Update(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameExists
		}
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签，仍被文章引用时拒绝
func (s *TagService) Delete(id uint) error {
	err := s.tags.DeleteGuarded(id)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrHasDependents) {
		return ErrTagInUse
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
