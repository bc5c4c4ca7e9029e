package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// wireItem 存储格式
// 字段名固定为id/title/price/qty/author/publisher/img/branch,与既有数据兼容
type wireItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Author    string  `json:"author"`
	Publisher string  `json:"publisher"`
	Img       string  `json:"img"`
	Branch    string  `json:"branch"`
}

// Encode 序列化购物车
// 空购物车编码为[]而不是null
func Encode(items []LineItem) ([]byte, error) {
	out := make([]wireItem, len(items))
	for i, item := range items {
		out[i] = wireItem{
			ID:        item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Qty:       item.Quantity,
			Author:    item.Author,
			Publisher: item.Publisher,
			Img:       item.Image,
			Branch:    string(item.Branch),
		}
	}
	return json.Marshal(out)
}

// Decode 反序列化购物车
// 宽松策略:
// - 空内容或null视为空购物车
// - 非对象的元素跳过
// - price/qty可以是数字或数字字符串,无法解析的price按0处理
// - qty缺失、无法解析或小于1按1处理
// 顶层不是数组时返回error,由Store降级为空购物车
func Decode(data []byte) ([]LineItem, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(raw))
	for _, elem := range raw {
		var fields map[string]any
		if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
			continue
		}

		qty := int(toNumber(fields["qty"]))
		if qty < 1 {
			qty = 1
		}
		items = append(items, LineItem{
			ID:        toString(fields["id"]),
			Branch:    catalog.Branch(toString(fields["branch"])),
			Title:     toString(fields["title"]),
			Author:    toString(fields["author"]),
			Publisher: toString(fields["publisher"]),
			Image:     toString(fields["img"]),
			Price:     toNumber(fields["price"]),
			Quantity:  qty,
		})
	}
	return items, nil
}

// toNumber 宽松数值转换,无法转换时返回0
func toNumber(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		n = parsed
	case bool:
		if t {
			n = 1
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
