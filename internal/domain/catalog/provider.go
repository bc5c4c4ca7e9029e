package catalog

// Provider 图书目录提供者(依赖倒置)
// 设计说明:
// 1. 只读查询,没有副作用
// 2. 未知分支返回空列表而不是错误(宽松默认值)
type Provider interface {
	// ListBooks 按分支返回有序的图书列表(返回副本)
	ListBooks(branch Branch) []Book

	// FindBook 在分支内按ID查找图书
	FindBook(branch Branch, id string) (Book, bool)
}
