package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/xiebiao/storefront/internal/domain/catalog"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Store 购物车存储
// 设计说明:
// 1. 唯一持有购物车状态,调用方只能拿到快照
// 2. 首次访问时从Storage加载,之后每次修改都整体写回
// 3. 槽不存在或内容损坏时按空购物车处理,之后的写入会覆盖它
// 4. 读取失败(I/O错误)时快照为空,但不标记为已加载:修改操作返回错误且不写回,下次访问重试
// 5. 每个操作在互斥锁内完成"读-改-写",对调用方而言是原子的
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu     sync.Mutex
	loaded bool
	items  []LineItem
}

// NewStore 创建购物车存储
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		logger:  logger,
	}
}

// AddItem 加入购物车
// 已存在相同(ID, 分支)时数量+1,否则新建一行(数量1,拷贝图书展示字段和当前价格)
func (s *Store) AddItem(ctx context.Context, book catalog.Book, branch catalog.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	if idx := s.indexOf(book.ID, branch); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		s.items = append(s.items, newLineItem(book, branch))
	}

	return s.persist(ctx)
}

// ChangeQuantity 调整数量
// 数量 = max(1, 数量+delta);不存在的明细项直接忽略(不写回)
func (s *Store) ChangeQuantity(ctx context.Context, id string, branch catalog.Branch, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id, branch)
	if idx < 0 {
		return nil
	}
	s.items[idx].Quantity = max(1, s.items[idx].Quantity+delta)

	return s.persist(ctx)
}

// RemoveItem 删除明细项,不存在时为空操作
func (s *Store) RemoveItem(ctx context.Context, id string, branch catalog.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if !item.Matches(id, branch) {
			kept = append(kept, item)
		}
	}
	s.items = kept

	return s.persist(ctx)
}

// Clear 清空购物车
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.items = nil

	return s.persist(ctx)
}

// Checkout 结账:在同一次加锁内取出全部明细并清空
// 返回的明细就是应付的内容;读取失败时不清空,返回nil和错误
// 写回失败时内存已清空,同时返回明细和错误
func (s *Store) Checkout(ctx context.Context) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	billed := s.items
	s.items = nil
	return billed, s.persist(ctx)
}

// Snapshot 返回当前购物车的有序副本
// 读取失败时返回空购物车
func (s *Store) Snapshot(ctx context.Context) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return []LineItem{}
	}

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// load 首次访问时加载购物车
// 读取失败返回存储错误并保持未加载状态,避免空购物车覆盖存储槽中的数据
func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	data, err := s.storage.Read(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "读取购物车失败,稍后重试", slog.Any("error", err))
		return apperrors.WrapStorage(err, "读取购物车失败")
	}

	s.loaded = true
	s.items = nil

	items, err := Decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "购物车数据损坏,按空购物车处理",
			slog.Any("error", err),
			slog.Int("bytes", len(data)),
		)
		return nil
	}
	s.items = items
	return nil
}

// persist 整体写回
// 写入失败时内存中的修改保留(用户看到的状态),错误返回给调用方
func (s *Store) persist(ctx context.Context) error {
	data, err := Encode(s.items)
	if err != nil {
		return apperrors.Wrap(err, "序列化购物车失败")
	}

	if err := s.storage.Write(ctx, data); err != nil {
		return apperrors.WrapStorage(err, "保存购物车失败")
	}
	return nil
}

func (s *Store) indexOf(id string, branch catalog.Branch) int {
	for i, item := range s.items {
		if item.Matches(id, branch) {
			return i
		}
	}
	return -1
}
