package dto

// AddItemRequest 加入购物车请求
// Branch为空时使用当前会话的分支
type AddItemRequest struct {
	BookID string `json:"book_id" binding:"required" example:"ai"`
	Branch string `json:"branch" example:"CSE"`
}

// AdjustQuantityRequest 调整数量请求
// Delta可以为负数或0，数量最小为1；缺少delta字段时绑定失败
type AdjustQuantityRequest struct {
	Delta *int `json:"delta" binding:"required" example:"1"`
}

// CatalogueQuery 目录查询参数
type CatalogueQuery struct {
	Branch string `form:"branch"`
}
