package repository

// ArticleListFilter 查询文章列表的过滤条件，各条件按 AND 组合
type ArticleListFilter struct {
	Page          int
	PerPage       int
	Status        string // 精确匹配（后台）
	AuthorID      uint   // 非管理员强制限定为本人
	CategoryID    uint   // 后台按 ID 过滤
	CategorySlug  string // 前台按 slug 过滤
	TagID         uint   // 后台按 ID 过滤
	TagSlug       string // 前台按 slug 过滤
	Search        string // 标题/正文/摘要 子串匹配（不区分大小写）
	OnlyPublished bool   // 前台仅展示已发布
	OrderBy       string
	WithRelations bool // 预加载作者/分类/标签
}
