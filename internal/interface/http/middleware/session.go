package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/application/storefront"
	"github.com/xiebiao/storefront/internal/domain/session"
	"github.com/xiebiao/storefront/pkg/response"
)

const (
	ctxKeyUsername = "username"
	ctxKeyBranch   = "branch"
)

// SessionSource 提供当前会话快照
type SessionSource interface {
	Session() *storefront.SessionView
}

// SessionMiddleware 会话门禁中间件
// 设计说明：
// 1. 会话未登录时直接返回40100，不进入Handler
// 2. 已登录时把用户名和分支注入Context，供日志等使用
type SessionMiddleware struct {
	source SessionSource
}

// NewSessionMiddleware 创建会话门禁中间件
func NewSessionMiddleware(source SessionSource) *SessionMiddleware {
	return &SessionMiddleware{source: source}
}

// RequireActive 要求已登录
// 使用方式：
//
//	cart := v1.Group("/cart")
//	cart.Use(sessionMiddleware.RequireActive())
func (m *SessionMiddleware) RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		view := m.source.Session()
		if !view.Active {
			response.Abort(c, session.ErrNotActive)
			return
		}

		c.Set(ctxKeyUsername, view.Username)
		c.Set(ctxKeyBranch, view.Branch)
		c.Next()
	}
}

// GetUsername 从Context获取已登录的用户名，未经过RequireActive时返回空串
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxKeyUsername)
}

// GetBranch 从Context获取登录时的分支
func GetBranch(c *gin.Context) string {
	return c.GetString(ctxKeyBranch)
}
