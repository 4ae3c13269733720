package service

import (
	"errors"
	"strings"

	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"

	"gorm.io/gorm"
)

// CategoryService 分类业务逻辑
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput 创建/更新分类请求
type CategoryInput struct {
	Name        string
	Description string
}

func validateTaxonomyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(name) > constants.TaxonomyNameMaxLen {
		return NewValidationError("name", "name is too long")
	}
	return nil
}

// List 分类列表（含文章数）
func (s *CategoryService) List() ([]repository.CategoryWithCount, error) {
	return s.categories.ListWithArticleCounts()
}

// GetByID 分类详情
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类。名称区分大小写唯一，slug 由名称派生。
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := validateTaxonomyName(input.Name); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)

	count, err := s.categories.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameExists
	}

	slug, err := GenerateSlug(name, func(candidate string) (bool, error) {
		n, err := s.categories.CountBySlug(candidate, nil)
		return n > 0, err
	})
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug, Description: input.Description}
	if err := s.categories.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameExists
		}
		return nil, err
	}
	return category, nil
}

// Update 更新分类，名称变化时重新派生 slug
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if err := validateTaxonomyName(input.Name); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)

	if name != category.Name {
		count, err := s.categories.CountByName(name, &category.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrNameExists
		}
		slug, err := GenerateSlug(name, func(candidate string) (bool, error) {
			n, err := s.categories.CountBySlug(candidate, &category.ID)
			return n > 0, err
		})
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	category.Name = name
	category.Description = input.Description
	if err := s.categories.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameExists
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍被文章引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	err := s.categories.DeleteGuarded(id)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrHasDependents) {
		return ErrCategoryInUse
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
