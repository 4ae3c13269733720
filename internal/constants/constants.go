package constants

// 文章状态常量
const (
	ArticleStatusInProgress     = "in_progress"
	ArticleStatusReadyForReview = "ready_for_review"
	ArticleStatusAccepted       = "accepted"
	ArticleStatusRejected       = "rejected"
	ArticleStatusPublished      = "published"
)

// ArticleStatuses 文章状态全集（状态机允许任意迁移，仅目标值需合法）
var ArticleStatuses = []string{
	ArticleStatusInProgress,
	ArticleStatusReadyForReview,
	ArticleStatusAccepted,
	ArticleStatusRejected,
	ArticleStatusPublished,
}

// AdminOnlyArticleStatuses 仅管理员可设置的目标状态
var AdminOnlyArticleStatuses = map[string]struct{}{
	ArticleStatusAccepted:  {},
	ArticleStatusPublished: {},
}

// 角色常量
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleWriter = "writer"
)

// Roles 内置角色全集
var Roles = []string{RoleAdmin, RoleEditor, RoleWriter}

// 字段长度限制
const (
	TitleMaxLength       = 200
	SummaryMaxLength     = 500
	TaxonomyNameMaxLen   = 50
	SlugMaxLength        = 190
	SlugMaxGenerateTries = 1000
)

// 分页默认值
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// 默认管理员账号
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin123"
)
