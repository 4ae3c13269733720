package admin

import "github.com/inkstone-cms/internal/provider"

// Handler 后台编辑接口处理器入口
// 说明：该处理器仅用于需要登录的编辑端 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
