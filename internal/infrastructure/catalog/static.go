package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

//go:embed books.yaml
var defaultBooks []byte

// bookRecord YAML中的图书记录
// 字段名与购物车存储格式保持一致(img而不是image)
type bookRecord struct {
	ID        string  `yaml:"id"`
	Title     string  `yaml:"title"`
	Author    string  `yaml:"author"`
	Publisher string  `yaml:"publisher"`
	Price     float64 `yaml:"price"`
	Img       string  `yaml:"img"`
}

// StaticProvider 静态图书目录
// 设计说明:
// 1. 构造时解析一次,之后只读,天然并发安全
// 2. ListBooks返回副本,调用方修改不会影响目录
type StaticProvider struct {
	books map[catalog.Branch][]catalog.Book
}

// NewStaticProvider 使用内置演示数据创建目录
func NewStaticProvider() (*StaticProvider, error) {
	return ParseProvider(defaultBooks)
}

// ParseProvider 从YAML文档创建目录
// 文档结构:顶层key为分支,value为有序的图书列表
func ParseProvider(data []byte) (*StaticProvider, error) {
	var raw map[string][]bookRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("解析图书目录失败: %w", err)
	}

	books := make(map[catalog.Branch][]catalog.Book, len(raw))
	for name, records := range raw {
		branch := catalog.Branch(name)
		if !branch.Valid() {
			return nil, fmt.Errorf("图书目录包含未知分支: %q", name)
		}

		seen := make(map[string]bool, len(records))
		list := make([]catalog.Book, 0, len(records))
		for _, r := range records {
			if r.ID == "" {
				return nil, fmt.Errorf("分支%s存在缺少id的图书", name)
			}
			if seen[r.ID] {
				return nil, fmt.Errorf("分支%s图书id重复: %s", name, r.ID)
			}
			if r.Price < 0 {
				return nil, fmt.Errorf("图书%s价格不能为负数", r.ID)
			}
			seen[r.ID] = true

			list = append(list, catalog.Book{
				ID:        r.ID,
				Title:     r.Title,
				Author:    r.Author,
				Publisher: r.Publisher,
				Price:     r.Price,
				Image:     r.Img,
			})
		}
		books[branch] = list
	}

	return &StaticProvider{books: books}, nil
}

// ListBooks 按分支返回图书列表
// 未知分支返回空列表(非nil),方便序列化为[]
func (p *StaticProvider) ListBooks(branch catalog.Branch) []catalog.Book {
	list := p.books[branch]
	out := make([]catalog.Book, len(list))
	copy(out, list)
	return out
}

// FindBook 在分支内按ID查找
func (p *StaticProvider) FindBook(branch catalog.Branch, id string) (catalog.Book, bool) {
	for _, b := range p.books[branch] {
		if b.ID == id {
			return b, true
		}
	}
	return catalog.Book{}, false
}

var _ catalog.Provider = (*StaticProvider)(nil)
