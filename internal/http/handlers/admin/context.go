package admin

import (
	handlershared "github.com/inkstone-cms/internal/http/handlers/shared"
	"github.com/inkstone-cms/internal/http/response"
	"github.com/inkstone-cms/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, perPage int) (int, int) {
	return handlershared.NormalizePagination(page, perPage)
}

// getPrincipal 从认证中间件写入的上下文键还原当前操作者
func getPrincipal(c *gin.Context) (service.Principal, bool) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return service.Principal{}, false
	}

	principal := service.Principal{UserID: userID}
	if value, exists := c.Get("username"); exists {
		if username, ok := value.(string); ok {
			principal.Username = username
		}
	}
	value, exists := c.Get("role")
	role, ok := value.(string)
	if !exists || !ok || role == "" {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return service.Principal{}, false
	}
	principal.Role = role
	return principal, true
}
