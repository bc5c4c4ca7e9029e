package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CartSlot Redis存储槽
// Key设计：{prefix}:{key}，如storefront:cart；不设置过期时间
type CartSlot struct {
	client redis.Cmdable
	key    string
}

// NewCartSlot 创建Redis存储槽，prefix为空时直接使用key
func NewCartSlot(client redis.Cmdable, prefix, key string) *CartSlot {
	if prefix != "" {
		key = fmt.Sprintf("%s:%s", prefix, key)
	}
	return &CartSlot{client: client, key: key}
}

// Key 实际使用的Redis key
func (s *CartSlot) Key() string {
	return s.key
}

// Read 读取槽内容，key不存在时返回(nil, nil)
func (s *CartSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取购物车失败: %w", err)
	}
	return data, nil
}

// Write 覆盖写入
func (s *CartSlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("保存购物车失败: %w", err)
	}
	return nil
}
