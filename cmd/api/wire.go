//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/xiebiao/storefront/internal/application/storefront"
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/session"
	catalogimpl "github.com/xiebiao/storefront/internal/infrastructure/catalog"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/internal/interface/http/router"
)

// infrastructureSet 基础设施层：购物车存储槽、图书目录
var infrastructureSet = wire.NewSet(
	persistence.NewCartStorage,
	catalogimpl.NewStaticProvider,
	wire.Bind(new(catalog.Provider), new(*catalogimpl.StaticProvider)),
)

// domainSet 领域层：会话闸门、购物车
var domainSet = wire.NewSet(
	session.NewGate,
	cart.NewStore,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	provideService,
)

// interfaceSet 接口层：中间件、Handler、路由
var interfaceSet = wire.NewSet(
	middleware.NewSessionMiddleware,
	wire.Bind(new(middleware.SessionSource), new(*storefront.Service)),
	handler.NewSessionHandler,
	handler.NewCatalogueHandler,
	handler.NewCartHandler,
	router.NewRouter,
)

// provideService 创建应用服务并注册指标、日志监听者
func provideService(
	gate *session.Gate,
	provider catalog.Provider,
	store *cart.Store,
	logger *slog.Logger,
) *storefront.Service {
	svc := storefront.NewService(gate, provider, store, logger)
	svc.Subscribe(storefront.NewMetricsListener())
	svc.Subscribe(storefront.NewLoggingListener(logger))
	return svc
}

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎和关闭存储连接的cleanup
func InitializeApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
