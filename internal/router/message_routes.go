// Package router 提供 HTTP 路由注册
// 本文件定义私信相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"mall_social_server/internal/infrastructure/middleware"
)

// RegisterMessageRoutes 注册私信相关路由（需要认证）
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.POST("/send", rt.handlers.Message.Send)         // 发送私信
		messageGroup.POST("/markRead", rt.handlers.Message.MarkRead) // 标记已读
		messageGroup.GET("/history", rt.handlers.Message.GetHistory) // 查询历史
		messageGroup.GET("/unread", rt.handlers.Message.GetUnread)   // 查询未读数
	}
}
