package cart

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// LineItem 购物车明细项
// 设计说明:
// 1. (ID, Branch)是复合主键,购物车内唯一
// 2. Title/Author/Publisher/Image/Price是加入购物车时的快照,之后不随目录变化
// 3. Quantity始终>=1,减到0不会自动删除
type LineItem struct {
	ID        string
	Branch    catalog.Branch
	Title     string
	Author    string
	Publisher string
	Image     string
	Price     float64
	Quantity  int
}

// newLineItem 由图书创建明细项(值拷贝,不引用目录)
func newLineItem(book catalog.Book, branch catalog.Branch) LineItem {
	return LineItem{
		ID:        book.ID,
		Branch:    branch,
		Title:     book.Title,
		Author:    book.Author,
		Publisher: book.Publisher,
		Image:     book.Image,
		Price:     book.Price,
		Quantity:  1,
	}
}

// Matches 是否为同一复合主键
func (i LineItem) Matches(id string, branch catalog.Branch) bool {
	return i.ID == id && i.Branch == branch
}

// LineTotal 单行金额(单价 × 数量),不做舍入
func (i LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}
