package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/application/storefront"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 明细项由(分支, 图书ID)唯一确定，所以路径上同时带branch和id
type CartHandler struct {
	svc *storefront.Service
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(svc *storefront.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// View 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Success      200 {object} response.Response{data=storefront.CartView}
// @Failure      200 {object} response.Response "未登录(40100)"
// @Router       /api/v1/cart [get]
func (h *CartHandler) View(c *gin.Context) {
	view, err := h.svc.ViewCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一分支的同一本书再次加入时数量加1；目录中不存在的图书被忽略
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        request body dto.AddItemRequest true "图书"
// @Success      200 {object} response.Response{data=storefront.CartView}
// @Failure      200 {object} response.Response "未登录(40100)或存储错误(50002)"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.svc.AddToCart(c.Request.Context(), req.BookID, req.Branch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// AdjustQuantity 调整数量
// @Summary      调整数量
// @Description  数量加上delta，结果最小为1
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        branch path string true "分支"
// @Param        id path string true "图书ID"
// @Param        request body dto.AdjustQuantityRequest true "变化量"
// @Success      200 {object} response.Response{data=storefront.CartView}
// @Router       /api/v1/cart/items/{branch}/{id} [patch]
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	var req dto.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.svc.AdjustQuantity(c.Request.Context(), c.Param("id"), c.Param("branch"), *req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// RemoveItem 删除明细项
// @Summary      删除明细项
// @Tags         购物车
// @Produce      json
// @Param        branch path string true "分支"
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=storefront.CartView}
// @Router       /api/v1/cart/items/{branch}/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.svc.RemoveFromCart(c.Request.Context(), c.Param("id"), c.Param("branch"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Success      200 {object} response.Response{data=storefront.CartView}
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.svc.ClearCart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// Checkout 结账
// @Summary      结账
// @Description  返回应付金额并清空购物车，不会真实扣款
// @Tags         购物车
// @Produce      json
// @Success      200 {object} response.Response{data=storefront.CheckoutResult}
// @Router       /api/v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	result, err := h.svc.Checkout(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
