package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/application/storefront"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/pkg/response"
)

// SessionHandler 会话HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 登录校验、分支校验都在Session Gate中完成
type SessionHandler struct {
	svc *storefront.Service
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(svc *storefront.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Login 提交登录表单
// @Summary      登录
// @Description  校验用户名、密码、分支，成功后会话变为已登录
// @Tags         会话
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=storefront.SessionView} "登录成功"
// @Failure      200 {object} response.Response{data=response.FieldsData} "字段校验失败(40900)"
// @Router       /api/v1/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.svc.SubmitLogin(c.Request.Context(), storefront.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		Branch:   req.Branch,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// ForgotPassword 忘记密码
// @Summary      忘记密码
// @Description  演示功能，只返回提示信息，不会发送邮件
// @Tags         会话
// @Accept       json
// @Produce      json
// @Param        request body dto.ForgotPasswordRequest true "邮箱或用户名"
// @Success      200 {object} response.Response{data=storefront.ForgotPasswordResult}
// @Router       /api/v1/session/forgot-password [post]
func (h *SessionHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.svc.ForgotPassword(c.Request.Context(), req.Identifier)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Current 当前会话
// @Summary      会话快照
// @Tags         会话
// @Produce      json
// @Success      200 {object} response.Response{data=storefront.SessionView}
// @Router       /api/v1/session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	response.Success(c, h.svc.Session())
}

// SelectBranch 切换分支
// @Summary      切换分支
// @Description  已登录状态下切换当前分支，购物车不受影响
// @Tags         会话
// @Accept       json
// @Produce      json
// @Param        request body dto.SelectBranchRequest true "分支"
// @Success      200 {object} response.Response{data=storefront.SessionView}
// @Failure      200 {object} response.Response "未登录(40100)或分支不合法(40900)"
// @Router       /api/v1/session/branch [put]
func (h *SessionHandler) SelectBranch(c *gin.Context) {
	var req dto.SelectBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.svc.SelectBranch(c.Request.Context(), req.Branch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}
