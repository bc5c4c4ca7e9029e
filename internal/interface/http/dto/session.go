package dto

// LoginRequest 登录请求
// 字段校验由Session Gate完成，这里不加binding，便于一次返回所有字段的错误
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
	Branch   string `json:"branch" example:"CSE"`
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" example:"alice@example.com"`
}

// SelectBranchRequest 切换分支请求
type SelectBranchRequest struct {
	Branch string `json:"branch" binding:"required" example:"ECE"`
}
