package storefront

import (
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/session"
)

// SessionView 会话快照
type SessionView struct {
	State    string   `json:"state"`
	Active   bool     `json:"active"`
	Branch   string   `json:"branch"`
	Username string   `json:"username,omitempty"`
	Branches []string `json:"branches"`
}

// BookView 目录中的图书
type BookView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Publisher string  `json:"publisher"`
	Price     float64 `json:"price"`
	PriceText string  `json:"price_text"`
	Image     string  `json:"img"`
}

// CatalogueView 某个分支的图书目录
type CatalogueView struct {
	Branch string     `json:"branch"`
	Books  []BookView `json:"books"`
}

// LineItemView 购物车明细
type LineItemView struct {
	ID        string  `json:"id"`
	Branch    string  `json:"branch"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Publisher string  `json:"publisher"`
	Image     string  `json:"img"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"qty"`
	PriceText string  `json:"price_text"`
	LineTotal string  `json:"line_total"`
}

// CartView 购物车快照
type CartView struct {
	Items  []LineItemView     `json:"items"`
	Empty  bool               `json:"empty"`
	Units  int                `json:"units"`
	Totals cart.DisplayTotals `json:"totals"`
}

// CheckoutResult 结账结果
type CheckoutResult struct {
	Billed cart.DisplayTotals `json:"billed"`
	Lines  int                `json:"lines"`
	Units  int                `json:"units"`
	Notice string             `json:"notice"`
}

// ForgotPasswordResult 忘记密码提示
type ForgotPasswordResult struct {
	Notice string `json:"notice"`
}

func newSessionView(snap session.Snapshot) *SessionView {
	branches := catalog.Branches()
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.String()
	}

	return &SessionView{
		State:    snap.State.String(),
		Active:   snap.Active(),
		Branch:   snap.Branch.String(),
		Username: snap.Username,
		Branches: names,
	}
}

func newCatalogueView(branch catalog.Branch, books []catalog.Book) *CatalogueView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = BookView{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Publisher: b.Publisher,
			Price:     b.Price,
			PriceText: cart.FormatPrice(b.Price),
			Image:     b.Image,
		}
	}
	return &CatalogueView{Branch: branch.String(), Books: views}
}

func newCartView(items []cart.LineItem) *CartView {
	views := make([]LineItemView, len(items))
	for i, item := range items {
		views[i] = LineItemView{
			ID:        item.ID,
			Branch:    item.Branch.String(),
			Title:     item.Title,
			Author:    item.Author,
			Publisher: item.Publisher,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			PriceText: cart.FormatPrice(item.Price),
			LineTotal: cart.FormatMoney(item.LineTotal()),
		}
	}

	return &CartView{
		Items:  views,
		Empty:  len(items) == 0,
		Units:  units(items),
		Totals: cart.ComputeTotals(items).Display(),
	}
}

func units(items []cart.LineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
