// Package handler 提供 HTTP 请求处理器
// 本文件处理敏感词过滤相关的 API 请求
package handler

import (
	"mall_social_server/internal/service"

	"github.com/gin-gonic/gin"
)

// FilterHandler 敏感词过滤请求处理器
type FilterHandler struct {
	filterSvc service.FilterService
}

// NewFilterHandler 创建过滤器处理器实例
func NewFilterHandler(filterSvc service.FilterService) *FilterHandler {
	return &FilterHandler{filterSvc: filterSvc}
}

// GetRules 下发客户端过滤规则
// GET /filter/rules
// 响应: respond.FilterRulesRespond
func (h *FilterHandler) GetRules(c *gin.Context) {
	HandleSuccess(c, h.filterSvc.GetClientRules())
}

// Reload 重新加载规则快照（后台调用）
// POST /filter/reload
// 响应: {"version": 新版本号}
func (h *FilterHandler) Reload(c *gin.Context) {
	version, err := h.filterSvc.Reload()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"version": version})
}
