package provider

import (
	"github.com/inkstone-cms/internal/config"
	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"
	"github.com/inkstone-cms/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	ArticleRepo  repository.ArticleRepository
	CategoryRepo repository.CategoryRepository
	TagRepo      repository.TagRepository
	UserRepo     repository.UserRepository
	RoleRepo     repository.RoleRepository

	// Services
	AuthService     *service.AuthService
	ArticleService  *service.ArticleService
	CategoryService *service.CategoryService
	TagService      *service.TagService
	UploadService   *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.RoleRepo = repository.NewRoleRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.UserRepo, c.RoleRepo, c.Config.JWT, c.Config.Security.PasswordPolicy)
	c.ArticleService = service.NewArticleService(c.ArticleRepo, c.CategoryRepo, c.TagRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.TagService = service.NewTagService(c.TagRepo)
	c.UploadService = service.NewUploadService(c.Config)
}
