package public

import (
	"github.com/inkstone-cms/internal/provider"

	handlershared "github.com/inkstone-cms/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// Handler 前台公开接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, perPage int) (int, int) {
	return handlershared.NormalizePagination(page, perPage)
}
