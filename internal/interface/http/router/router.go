package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/storefront/docs" // swagger文档
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// NewRouter 创建Gin引擎并注册所有路由
//
// 中间件顺序：Recovery → Tracing → Logger → Metrics → 会话门禁（仅购物车等路由）
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	sessionHandler *handler.SessionHandler,
	catalogueHandler *handler.CatalogueHandler,
	cartHandler *handler.CartHandler,
	sessionMiddleware *middleware.SessionMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Tracing(), middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// 访问 /swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 会话（登录、忘记密码、快照不需要登录）
		sessions := v1.Group("/session")
		{
			sessions.POST("/login", sessionHandler.Login)
			sessions.POST("/forgot-password", sessionHandler.ForgotPassword)
			sessions.GET("", sessionHandler.Current)
			sessions.PUT("/branch", sessionMiddleware.RequireActive(), sessionHandler.SelectBranch)
		}

		v1.GET("/catalogue", sessionMiddleware.RequireActive(), catalogueHandler.List)

		carts := v1.Group("/cart")
		carts.Use(sessionMiddleware.RequireActive())
		{
			carts.GET("", cartHandler.View)
			carts.DELETE("", cartHandler.Clear)
			carts.POST("/items", cartHandler.AddItem)
			carts.PATCH("/items/:branch/:id", cartHandler.AdjustQuantity)
			carts.DELETE("/items/:branch/:id", cartHandler.RemoveItem)
			carts.POST("/checkout", cartHandler.Checkout)
		}
	}

	return r
}
