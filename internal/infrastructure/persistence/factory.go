package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/file"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
	redisslot "github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
)

// NewCartStorage 按storage.driver创建购物车存储槽
// 返回的cleanup负责关闭连接，调用方在退出时执行
func NewCartStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cart.Storage, func(), error) {
	noop := func() {}
	key := cfg.Storage.Key

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return NewGuardedSlot(memory.NewSlot(), config.DriverMemory, nil), noop, nil

	case config.DriverFile:
		slot, err := file.NewOsSlot(cfg.Storage.File.Dir, key)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("cart storage ready", "driver", config.DriverFile, "path", slot.Path())
		return NewGuardedSlot(slot, config.DriverFile, nil), noop, nil

	case config.DriverRedis:
		client, err := redisslot.NewClient(ctx, cfg.Storage.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Error("close redis failed", "error", err)
			}
		}
		slot := redisslot.NewCartSlot(client, cfg.Storage.Redis.Prefix, key)
		breaker := NewBreaker("cart-redis", cfg.Breaker, logger)
		return NewGuardedSlot(slot, config.DriverRedis, breaker), cleanup, nil

	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg.Storage.Database, cfg.Server.Mode, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		slot := mysql.NewSlotRepository(db, key)
		breaker := NewBreaker("cart-mysql", cfg.Breaker, logger)
		return NewGuardedSlot(slot, config.DriverMySQL, breaker), cleanup, nil
	}

	return nil, nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Storage.Driver)
}
