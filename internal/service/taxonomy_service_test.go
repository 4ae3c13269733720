package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTaxonomyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	db := newTaxonomyTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	category, err := svc.Create(CategoryInput{Name: "Tech News", Description: "all things tech"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Slug != "tech-news" {
		t.Fatalf("slug = %q, want tech-news", category.Slug)
	}
}

func TestCategoryNameMustBeUnique(t *testing.T) {
	db := newTaxonomyTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	if _, err := svc.Create(CategoryInput{Name: "Culture"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Culture"}); !errors.Is(err, ErrNameExists) {
		t.Fatalf("duplicate name error = %v, want ErrNameExists", err)
	}
	// 名称区分大小写，不同大小写是不同分类
	if _, err := svc.Create(CategoryInput{Name: "culture"}); err != nil {
		t.Fatalf("case-different name should be allowed: %v", err)
	}
}

func TestCategoryDeleteGuarded(t *testing.T) {
	db := newTaxonomyTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	category, err := svc.Create(CategoryInput{Name: "Pinned"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	article := models.Article{
		Title: "Anchor", Slug: "anchor", Content: "x",
		Status: "in_progress", AuthorID: 1, CategoryID: &category.ID,
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article failed: %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("delete error = %v, want ErrCategoryInUse", err)
	}

	// 解除引用后可删除
	if err := db.Model(&article).Update("category_id", nil).Error; err != nil {
		t.Fatalf("detach category failed: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete after detach failed: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestTagDeleteGuarded(t *testing.T) {
	db := newTaxonomyTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))

	tag, err := svc.Create(TagInput{Name: "golang"})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	article := models.Article{
		Title: "Tagged", Slug: "tagged", Content: "x",
		Status: "in_progress", AuthorID: 1,
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article failed: %v", err)
	}
	if err := db.Model(&article).Association("Tags").Append(tag); err != nil {
		t.Fatalf("attach tag failed: %v", err)
	}

	if err := svc.Delete(tag.ID); !errors.Is(err, ErrTagInUse) {
		t.Fatalf("delete error = %v, want ErrTagInUse", err)
	}

	if err := db.Model(&article).Association("Tags").Clear(); err != nil {
		t.Fatalf("clear tags failed: %v", err)
	}
	if err := svc.Delete(tag.ID); err != nil {
		t.Fatalf("delete after clear failed: %v", err)
	}
}

func TestTagRenameKeepsUniqueness(t *testing.T) {
	db := newTaxonomyTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))

	if _, err := svc.Create(TagInput{Name: "databases"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	tag, err := svc.Create(TagInput{Name: "storage"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(tag.ID, TagInput{Name: "databases"}); !errors.Is(err, ErrNameExists) {
		t.Fatalf("rename onto taken name error = %v, want ErrNameExists", err)
	}

	renamed, err := svc.Update(tag.ID, TagInput{Name: "Object Storage"})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Slug != "object-storage" {
		t.Fatalf("slug = %q, want object-storage", renamed.Slug)
	}
}
