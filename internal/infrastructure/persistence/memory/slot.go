package memory

import (
	"context"
	"sync"
)

// Slot 进程内存储槽，进程退出后内容丢失（测试和临时运行使用）
type Slot struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// NewSlot 创建空存储槽
func NewSlot() *Slot {
	return &Slot{}
}

// Read 读取槽内容，从未写入时返回(nil, nil)
func (s *Slot) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

// Write 覆盖写入
func (s *Slot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}
