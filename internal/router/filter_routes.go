// Package router 提供 HTTP 路由注册
// 本文件定义敏感词过滤相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"mall_social_server/internal/infrastructure/middleware"
)

// RegisterFilterRoutes 注册敏感词过滤相关路由
// 规则本身不含敏感信息，下发接口公开；重载是后台动作
func (rt *Router) RegisterFilterRoutes(rg *gin.RouterGroup) {
	filterGroup := rg.Group("/filter")
	{
		filterGroup.GET("/rules", rt.handlers.Filter.GetRules)                             // 下发客户端规则
		filterGroup.POST("/reload", middleware.PushTokenAuth(), rt.handlers.Filter.Reload) // 重载规则快照
	}
}
