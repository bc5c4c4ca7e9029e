package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/application/storefront"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/pkg/response"
)

// CatalogueHandler 图书目录HTTP处理器
type CatalogueHandler struct {
	svc *storefront.Service
}

// NewCatalogueHandler 创建目录处理器
func NewCatalogueHandler(svc *storefront.Service) *CatalogueHandler {
	return &CatalogueHandler{svc: svc}
}

// List 图书目录
// @Summary      图书目录
// @Description  默认返回当前分支的图书，未知分支返回空列表
// @Tags         目录
// @Produce      json
// @Param        branch query string false "分支(CSE/ECE/EEE/CIVIL)"
// @Success      200 {object} response.Response{data=storefront.CatalogueView}
// @Failure      200 {object} response.Response "未登录(40100)"
// @Router       /api/v1/catalogue [get]
func (h *CatalogueHandler) List(c *gin.Context) {
	var query dto.CatalogueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.svc.ListCatalogue(c.Request.Context(), query.Branch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}
