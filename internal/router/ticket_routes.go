// Package router 提供 HTTP 路由注册
// 本文件定义工单相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"mall_social_server/internal/infrastructure/middleware"
)

// RegisterTicketRoutes 注册工单相关路由
// nudge 自带跨站签名鉴权；internal 前缀仅供可信后端，走静态令牌网关
func (rt *Router) RegisterTicketRoutes(rg *gin.RouterGroup) {
	rg.POST("/ticket/nudge", rt.handlers.Ticket.Nudge) // 工单已变更信号

	internalGroup := rg.Group("/internal/ticket")
	internalGroup.Use(middleware.PushTokenAuth())
	{
		internalGroup.POST("/push", rt.handlers.Ticket.ServerPush) // 服务端直推消息
		internalGroup.POST("/assign", rt.handlers.Ticket.Assign)   // 指派工单
	}
}
