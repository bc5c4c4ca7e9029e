package cart

import (
	"github.com/shopspring/decimal"
)

// TaxRate 固定税率 5%
var TaxRate = decimal.RequireFromString("0.05")

// Totals 购物车金额汇总(派生数据,不持久化)
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals 计算购物车金额
// 纯函数:无状态、无副作用
// 中间计算使用精确十进制,不做舍入;结果与明细顺序无关
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// DisplayTotals 格式化后的金额
type DisplayTotals struct {
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grand_total"`
}

// Display 格式化为展示金额(两位小数)
func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal:   FormatMoney(t.Subtotal),
		Tax:        FormatMoney(t.Tax),
		GrandTotal: FormatMoney(t.GrandTotal),
	}
}

// FormatMoney 金额展示格式:$ + 两位小数
// 例如:132.3 → "$132.30"
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatPrice 单价展示格式
func FormatPrice(price float64) string {
	return FormatMoney(decimal.NewFromFloat(price))
}
