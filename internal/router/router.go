package router

import (
	"github.com/inkstone-cms/internal/config"
	adminhandlers "github.com/inkstone-cms/internal/http/handlers/admin"
	publichandlers "github.com/inkstone-cms/internal/http/handlers/public"
	"github.com/inkstone-cms/internal/logger"
	"github.com/inkstone-cms/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./"+cfg.Upload.Dir)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/articles", publicHandler.GetArticles)
			public.GET("/articles/:slug", publicHandler.GetArticleBySlug)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/tags", publicHandler.GetTags)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", publicHandler.Login)
		}

		// 编辑端接口（需鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			// 当前用户
			admin.GET("/me", adminHandler.GetMe)

			// 文章管理
			admin.GET("/articles", adminHandler.GetAdminArticles)
			admin.GET("/articles/:id", adminHandler.GetAdminArticle)
			admin.POST("/articles", adminHandler.CreateArticle)
			admin.PUT("/articles/:id", adminHandler.UpdateArticle)
			admin.PUT("/articles/:id/status", adminHandler.UpdateArticleStatus)
			admin.POST("/articles/:id/image", adminHandler.UploadArticleImage)

			// 分类与标签管理（仅管理员）
			taxonomy := admin.Group("")
			taxonomy.Use(RequireAdminMiddleware())
			{
				taxonomy.POST("/categories", adminHandler.CreateCategory)
				taxonomy.PUT("/categories/:id", adminHandler.UpdateCategory)
				taxonomy.DELETE("/categories/:id", adminHandler.DeleteCategory)
				taxonomy.POST("/tags", adminHandler.CreateTag)
				taxonomy.PUT("/tags/:id", adminHandler.UpdateTag)
				taxonomy.DELETE("/tags/:id", adminHandler.DeleteTag)
			}

			// 列表对所有登录用户开放
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.GET("/tags", adminHandler.GetAdminTags)
		}
	}

	// 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
