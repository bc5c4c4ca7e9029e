package cart

import "context"

// Storage 持久化存储槽(依赖倒置)
// 设计说明:
// 1. 一个Storage实例对应一个固定key,保存整个购物车的序列化内容
// 2. 槽不存在时Read返回(nil, nil),不视为错误
// 3. 实现位于infrastructure/persistence(memory/file/redis/mysql)
type Storage interface {
	// Read 读取槽内容
	Read(ctx context.Context) ([]byte, error)

	// Write 覆盖写入槽内容
	Write(ctx context.Context, data []byte) error
}

// DefaultKey 购物车存储槽的固定key
const DefaultKey = "cart"
