package main

import (
	"time"

	"github.com/inkstone-cms/internal/config"
	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/logger"
	"github.com/inkstone-cms/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 内置角色与默认管理员
	if err := models.SeedRoles(models.DB); err != nil {
		stdLog.Fatalf("Failed to seed roles: %v", err)
	}
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Technology", Slug: "technology", Description: "软件、硬件与工程实践"},
		{Name: "Culture", Slug: "culture", Description: "行业观察与文化随笔"},
		{Name: "Announcements", Slug: "announcements", Description: "站点公告"},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 添加标签
	tags := []models.Tag{
		{Name: "golang", Slug: "golang"},
		{Name: "databases", Slug: "databases"},
		{Name: "writing", Slug: "writing"},
	}
	for _, tag := range tags {
		var existing models.Tag
		if err := models.DB.Where("slug = ?", tag.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tag).Error; err != nil {
				stdLog.Printf("Failed to create tag %s: %v", tag.Slug, err)
			} else {
				stdLog.Printf("Created tag: %s", tag.Slug)
			}
		} else {
			stdLog.Printf("Tag already exists: %s", tag.Slug)
		}
	}

	// 示例文章挂在默认管理员名下
	var admin models.User
	if err := models.DB.Where("username = ?", constants.DefaultAdminUsername).First(&admin).Error; err != nil {
		stdLog.Printf("Default admin not found, skip demo article: %v", err)
		return
	}
	var techCategory models.Category
	if err := models.DB.Where("slug = ?", "announcements").First(&techCategory).Error; err != nil {
		stdLog.Printf("Failed to load category: %v", err)
		return
	}

	var existing models.Article
	if err := models.DB.Where("slug = ?", "welcome-to-inkstone").First(&existing).Error; err == nil {
		stdLog.Printf("Demo article already exists")
		return
	}

	now := time.Now()
	article := models.Article{
		Title:       "Welcome to Inkstone",
		Slug:        "welcome-to-inkstone",
		Content:     "Inkstone 已经就绪。登录编辑端创建你的第一篇文章吧。",
		Summary:     "站点初始化完成",
		Status:      constants.ArticleStatusPublished,
		PublishedAt: &now,
		AuthorID:    admin.ID,
		CategoryID:  &techCategory.ID,
	}
	if err := models.DB.Create(&article).Error; err != nil {
		stdLog.Printf("Failed to create demo article: %v", err)
		return
	}
	stdLog.Printf("Created demo article: %s", article.Slug)
}
