package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type articleTestEnv struct {
	db       *gorm.DB
	articles *ArticleService
	admin    Principal
	writer   Principal
}

func newArticleTestEnv(t *testing.T) *articleTestEnv {
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
	if err := models.SeedRoles(db); err != nil {
		t.Fatalf("seed roles failed: %v", err)
	}

	var adminRole, writerRole models.Role
	if err := db.Where("name = ?", constants.RoleAdmin).First(&adminRole).Error; err != nil {
		t.Fatalf("load admin role failed: %v", err)
	}
	if err := db.Where("name = ?", constants.RoleWriter).First(&writerRole).Error; err != nil {
		t.Fatalf("load writer role failed: %v", err)
	}

	adminUser := models.User{Username: "boss", Email: "boss@example.com", PasswordHash: "x", RoleID: adminRole.ID}
	writerUser := models.User{Username: "scribe", Email: "scribe@example.com", PasswordHash: "x", RoleID: writerRole.ID}
	if err := db.Create(&adminUser).Error; err != nil {
		t.Fatalf("create admin user failed: %v", err)
	}
	if err := db.Create(&writerUser).Error; err != nil {
		t.Fatalf("create writer user failed: %v", err)
	}

	svc := NewArticleService(
		repository.NewArticleRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewTagRepository(db),
	)
	return &articleTestEnv{
		db:       db,
		articles: svc,
		admin:    Principal{UserID: adminUser.ID, Username: adminUser.Username, Role: constants.RoleAdmin},
		writer:   Principal{UserID: writerUser.ID, Username: writerUser.Username, Role: constants.RoleWriter},
	}
}

func TestCreateArticleGeneratesSlug(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{
		Title:   "My First Post!",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("create article failed: %v", err)
	}
	if article.Slug != "my-first-post" {
		t.Fatalf("slug = %q, want my-first-post", article.Slug)
	}
	if article.Status != constants.ArticleStatusInProgress {
		t.Fatalf("status = %q, want in_progress", article.Status)
	}
	if article.PublishedAt != nil {
		t.Fatalf("new article must not carry a publish timestamp")
	}
	if article.AuthorID != env.writer.UserID {
		t.Fatalf("author = %d, want %d", article.AuthorID, env.writer.UserID)
	}
}

func TestCreateArticleSlugCollisionGetsSuffix(t *testing.T) {
	env := newArticleTestEnv(t)

	first, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Same Title", Content: "a"})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Same Title", Content: "b"})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if first.Slug != "same-title" || second.Slug != "same-title-1" {
		t.Fatalf("slugs = %q / %q, want same-title / same-title-1", first.Slug, second.Slug)
	}
}

func TestCreateArticleRejectsBadInput(t *testing.T) {
	env := newArticleTestEnv(t)

	var verr *ValidationError
	if _, err := env.articles.Create(env.writer, CreateArticleInput{Title: "", Content: "x"}); !errors.As(err, &verr) {
		t.Fatalf("empty title error = %v, want ValidationError", err)
	}
	if _, err := env.articles.Create(env.writer, CreateArticleInput{Title: "T", Content: ""}); !errors.As(err, &verr) {
		t.Fatalf("empty content error = %v, want ValidationError", err)
	}
	if _, err := env.articles.Create(env.writer, CreateArticleInput{Title: "!!!", Content: "x"}); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("unsluggable title error = %v, want ErrInvalidTitle", err)
	}
}

func TestPublishStampsTimestamp(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Launch", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := env.articles.UpdateStatus(env.admin, article.ID, UpdateStatusInput{
		Status: constants.ArticleStatusPublished,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("published article must carry a publish timestamp")
	}
	firstStamp := *published.PublishedAt

	// 退回草稿后时间戳清空
	demoted, err := env.articles.UpdateStatus(env.admin, article.ID, UpdateStatusInput{
		Status: constants.ArticleStatusInProgress,
	})
	if err != nil {
		t.Fatalf("demote failed: %v", err)
	}
	if demoted.PublishedAt != nil {
		t.Fatalf("unpublished article must not carry a publish timestamp")
	}

	// 再次发布刷新时间戳
	time.Sleep(10 * time.Millisecond)
	republished, err := env.articles.UpdateStatus(env.admin, article.ID, UpdateStatusInput{
		Status: constants.ArticleStatusPublished,
	})
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if republished.PublishedAt == nil || !republished.PublishedAt.After(firstStamp) {
		t.Fatalf("republish must refresh the publish timestamp")
	}
}

func TestWriterCannotPublish(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Draft", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, status := range []string{constants.ArticleStatusAccepted, constants.ArticleStatusPublished} {
		if _, err := env.articles.UpdateStatus(env.writer, article.ID, UpdateStatusInput{Status: status}); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("writer set %s error = %v, want ErrPermissionDenied", status, err)
		}
	}

	// 状态不得被部分写入
	current, err := env.articles.GetAdminByID(env.writer, article.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if current.Status != constants.ArticleStatusInProgress {
		t.Fatalf("status = %q, want in_progress after denied transitions", current.Status)
	}

	// 作者可以提交送审
	submitted, err := env.articles.UpdateStatus(env.writer, article.ID, UpdateStatusInput{
		Status: constants.ArticleStatusReadyForReview,
	})
	if err != nil {
		t.Fatalf("submit for review failed: %v", err)
	}
	if submitted.Status != constants.ArticleStatusReadyForReview {
		t.Fatalf("status = %q, want ready_for_review", submitted.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Draft", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.articles.UpdateStatus(env.admin, article.ID, UpdateStatusInput{Status: "archived"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestReviewCommentWrittenWithStatus(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Needs Work", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rejected, err := env.articles.UpdateStatus(env.admin, article.ID, UpdateStatusInput{
		Status:        constants.ArticleStatusRejected,
		ReviewComment: "needs a stronger intro",
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if len(rejected.Comments) != 1 {
		t.Fatalf("comment count = %d, want 1", len(rejected.Comments))
	}
	comment := rejected.Comments[0]
	if !comment.IsReviewComment {
		t.Fatalf("comment must be flagged as review comment")
	}
	if comment.UserID != env.admin.UserID {
		t.Fatalf("comment author = %d, want reviewer %d", comment.UserID, env.admin.UserID)
	}
}

func TestStatusAndCommentAreAtomic(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Atomic", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 预占评论主键，让事务内的评论写入必然失败
	blocker := models.Comment{
		ArticleID: article.ID,
		UserID:    env.admin.UserID,
		Content:   "placeholder",
	}
	if err := env.db.Create(&blocker).Error; err != nil {
		t.Fatalf("create blocker comment failed: %v", err)
	}
	conflicting := &models.Comment{
		ID:              blocker.ID,
		ArticleID:       article.ID,
		UserID:          env.admin.UserID,
		Content:         "boom",
		IsReviewComment: true,
	}
	repo := repository.NewArticleRepository(env.db)
	if err := repo.UpdateStatusWithComment(&models.Article{ID: article.ID, Status: constants.ArticleStatusRejected}, conflicting); err == nil {
		t.Fatalf("expected primary key conflict to fail the transaction")
	}

	var reloaded models.Article
	if err := env.db.First(&reloaded, article.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ArticleStatusInProgress {
		t.Fatalf("status = %q, want in_progress after rollback", reloaded.Status)
	}
}

func TestOwnerScopingOnAdminReads(t *testing.T) {
	env := newArticleTestEnv(t)

	mine, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Mine", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	theirs, err := env.articles.Create(env.admin, CreateArticleInput{Title: "Theirs", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := env.articles.GetAdminByID(env.writer, theirs.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("cross-owner read error = %v, want ErrPermissionDenied", err)
	}

	list, total, err := env.articles.ListAdmin(env.writer, ListArticlesInput{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != mine.ID {
		t.Fatalf("writer list = %d items (total %d), want only own article", len(list), total)
	}

	_, total, err = env.articles.ListAdmin(env.admin, ListArticlesInput{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("admin list total = %d, want 2", total)
	}
}

func TestPublicListOnlyPublished(t *testing.T) {
	env := newArticleTestEnv(t)

	draft, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Hidden Draft", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	published, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Visible Post", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.articles.UpdateStatus(env.admin, published.ID, UpdateStatusInput{
		Status: constants.ArticleStatusPublished,
	}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	list, total, err := env.articles.ListPublic(PublicListArticlesInput{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("public list failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != published.ID {
		t.Fatalf("public list must contain only the published article")
	}

	if _, err := env.articles.GetPublicBySlug(draft.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft by slug error = %v, want ErrNotFound", err)
	}
	got, err := env.articles.GetPublicBySlug(published.Slug)
	if err != nil {
		t.Fatalf("published by slug failed: %v", err)
	}
	if got.ID != published.ID {
		t.Fatalf("slug lookup returned article %d, want %d", got.ID, published.ID)
	}
}

func TestUpdateFieldsAndTagsAreAtomic(t *testing.T) {
	env := newArticleTestEnv(t)

	tag := models.Tag{Name: "golang", Slug: "golang"}
	if err := env.db.Create(&tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Before", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 摘掉关联表，让标签替换必然失败
	if err := env.db.Migrator().DropTable("article_tags"); err != nil {
		t.Fatalf("drop join table failed: %v", err)
	}

	if _, err := env.articles.Update(env.writer, article.ID, UpdateArticleInput{
		Title:   "After",
		Content: "y",
		TagIDs:  []uint{tag.ID},
	}); err == nil {
		t.Fatalf("expected the update to fail on the tag replacement")
	}

	var reloaded models.Article
	if err := env.db.First(&reloaded, article.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Title != "Before" || reloaded.Slug != "before" || reloaded.Content != "x" {
		t.Fatalf("article = %q/%q/%q, must be untouched after rollback", reloaded.Title, reloaded.Slug, reloaded.Content)
	}
}

// slugRetryArticleRepo 模拟并发创建：预检查看不到冲突，
// 首次插入被唯一索引拦下。
type slugRetryArticleRepo struct {
	repository.ArticleRepository

	taken   map[string]bool
	creates int
	last    *models.Article
}

func (r *slugRetryArticleRepo) CountBySlug(slug string, _ *uint) (int64, error) {
	if r.taken[slug] {
		return 1, nil
	}
	return 0, nil
}

func (r *slugRetryArticleRepo) Create(article *models.Article) error {
	r.creates++
	if r.creates == 1 {
		r.taken[article.Slug] = true
		return gorm.ErrDuplicatedKey
	}
	article.ID = 1
	saved := *article
	r.last = &saved
	return nil
}

func (r *slugRetryArticleRepo) GetDetailByID(uint) (*models.Article, error) {
	return r.last, nil
}

func TestCreateArticleRetriesOnDuplicateKey(t *testing.T) {
	repo := &slugRetryArticleRepo{taken: make(map[string]bool)}
	svc := NewArticleService(repo, nil, nil)

	article, err := svc.Create(Principal{UserID: 7, Username: "scribe", Role: constants.RoleWriter}, CreateArticleInput{
		Title:   "Hot Topic",
		Content: "x",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if repo.creates != 2 {
		t.Fatalf("insert attempts = %d, want 2", repo.creates)
	}
	if article.Slug != "hot-topic-1" {
		t.Fatalf("slug = %q, want hot-topic-1", article.Slug)
	}
}

func TestUpdateRenamesSlugOnTitleChange(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(env.writer, CreateArticleInput{Title: "Old Title", Content: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := env.articles.Update(env.writer, article.ID, UpdateArticleInput{
		Title:   "New Title",
		Content: "y",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "new-title" {
		t.Fatalf("slug = %q, want new-title", updated.Slug)
	}

	// 标题不变时 slug 保持稳定
	same, err := env.articles.Update(env.writer, article.ID, UpdateArticleInput{
		Title:   "New Title",
		Content: "z",
	})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if same.Slug != "new-title" {
		t.Fatalf("slug changed to %q on a no-op title", same.Slug)
	}
}
