package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/inkstone-cms/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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

func seedArticle(t *testing.T, db *gorm.DB, article *models.Article) {
	t.Helper()
	if article.Status == "" {
		article.Status = "in_progress"
	}
	if article.AuthorID == 0 {
		article.AuthorID = 1
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("seed article %q failed: %v", article.Title, err)
	}
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	for i := 1; i <= 5; i++ {
		seedArticle(t, db, &models.Article{
			Title:   fmt.Sprintf("Post %d", i),
			Slug:    fmt.Sprintf("post-%d", i),
			Content: "x",
		})
	}

	page1, total, err := repo.List(ArticleListFilter{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(page1))
	}
	if TotalPages(total, 2) != 3 {
		t.Fatalf("total pages = %d, want 3", TotalPages(total, 2))
	}

	page3, _, err := repo.List(ArticleListFilter{Page: 3, PerPage: 2})
	if err != nil {
		t.Fatalf("list page 3 failed: %v", err)
	}
	if len(page3) != 1 {
		t.Fatalf("page 3 size = %d, want 1", len(page3))
	}

	// 超出范围返回空列表而非错误
	page9, total, err := repo.List(ArticleListFilter{Page: 9, PerPage: 2})
	if err != nil {
		t.Fatalf("list page 9 failed: %v", err)
	}
	if len(page9) != 0 || total != 5 {
		t.Fatalf("out-of-range page = %d items (total %d), want empty with total 5", len(page9), total)
	}
}

func TestListOrderingTieBreak(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		article := models.Article{
			Title:   fmt.Sprintf("Same Minute %d", i),
			Slug:    fmt.Sprintf("same-minute-%d", i),
			Content: "x",
		}
		seedArticle(t, db, &article)
		// 抹平创建时间，逼出 id 兜底排序
		if err := db.Model(&article).Update("created_at", stamp).Error; err != nil {
			t.Fatalf("flatten created_at failed: %v", err)
		}
	}

	list, _, err := repo.List(ArticleListFilter{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID < list[i].ID {
			t.Fatalf("tie-broken order not descending by id: %d before %d", list[i-1].ID, list[i].ID)
		}
	}
}

func TestListSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	seedArticle(t, db, &models.Article{Title: "Kubernetes Deep Dive", Slug: "k8s", Content: "orchestration"})
	seedArticle(t, db, &models.Article{Title: "Cooking", Slug: "cooking", Content: "contains KUBERNETES too"})
	seedArticle(t, db, &models.Article{Title: "Unrelated", Slug: "unrelated", Content: "nothing here"})

	list, total, err := repo.List(ArticleListFilter{Page: 1, PerPage: 10, Search: "kubernetes"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("search matched %d (total %d), want 2", len(list), total)
	}
}

func TestListTagFilterNoDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	tagA := models.Tag{Name: "go", Slug: "go"}
	tagB := models.Tag{Name: "web", Slug: "web"}
	if err := db.Create(&tagA).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if err := db.Create(&tagB).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}

	// 同一篇文章挂两个标签，按单个标签过滤只应出现一次
	article := models.Article{Title: "Multi Tag", Slug: "multi-tag", Content: "x", Status: "in_progress", AuthorID: 1, Tags: []models.Tag{tagA, tagB}}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article failed: %v", err)
	}
	other := models.Article{Title: "Only Web", Slug: "only-web", Content: "x", Status: "in_progress", AuthorID: 1, Tags: []models.Tag{tagB}}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create article failed: %v", err)
	}

	list, total, err := repo.List(ArticleListFilter{Page: 1, PerPage: 10, TagSlug: "web"})
	if err != nil {
		t.Fatalf("tag filter failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("tag filter = %d items (total %d), want 2", len(list), total)
	}

	list, total, err = repo.List(ArticleListFilter{Page: 1, PerPage: 10, TagID: tagA.ID})
	if err != nil {
		t.Fatalf("tag id filter failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != article.ID {
		t.Fatalf("tag id filter must return the tagged article exactly once")
	}
}

func TestListCategorySlugFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	category := models.Category{Name: "Tech", Slug: "tech"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	seedArticle(t, db, &models.Article{Title: "In Tech", Slug: "in-tech", Content: "x", CategoryID: &category.ID})
	seedArticle(t, db, &models.Article{Title: "No Category", Slug: "no-category", Content: "x"})

	list, total, err := repo.List(ArticleListFilter{Page: 1, PerPage: 10, CategorySlug: "tech"})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Slug != "in-tech" {
		t.Fatalf("category filter must return only the categorized article")
	}
}

func TestUpdateWithTagsIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	tag := models.Tag{Name: "go", Slug: "go"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	article := models.Article{Title: "Before", Slug: "before", Content: "x"}
	seedArticle(t, db, &article)

	// 摘掉关联表，让事务内的标签替换必然失败
	if err := db.Migrator().DropTable("article_tags"); err != nil {
		t.Fatalf("drop join table failed: %v", err)
	}

	article.Title = "After"
	article.Slug = "after"
	if err := repo.UpdateWithTags(&article, []models.Tag{tag}); err == nil {
		t.Fatalf("expected the tag replacement to fail the transaction")
	}

	var reloaded models.Article
	if err := db.First(&reloaded, article.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Title != "Before" || reloaded.Slug != "before" {
		t.Fatalf("article = %q/%q, want Before/before after rollback", reloaded.Title, reloaded.Slug)
	}
}

func TestGuardedDeleteIsAtomic(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)

	category := models.Category{Name: "Busy", Slug: "busy"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	seedArticle(t, db, &models.Article{Title: "Holder", Slug: "holder", Content: "x", CategoryID: &category.ID})

	if err := categories.DeleteGuarded(category.ID); err != ErrHasDependents {
		t.Fatalf("delete error = %v, want ErrHasDependents", err)
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("category must survive a refused delete")
	}
}

func TestCountsWithExclusion(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)

	article := models.Article{Title: "Self", Slug: "self", Content: "x", Status: "in_progress", AuthorID: 1}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	count, err := repo.CountBySlug("self", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	count, err = repo.CountBySlug("self", &article.ID)
	if err != nil {
		t.Fatalf("count with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count excluding self = %d, want 0", count)
	}
}
