package admin

import (
	"errors"

	"github.com/inkstone-cms/internal/http/response"
	"github.com/inkstone-cms/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMe 当前登录用户信息
func (h *Handler) GetMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	user, err := h.AuthService.GetUser(principal.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeUnauthorized, "unauthorized", nil)
			return
		}
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	response.Success(c, user)
}
