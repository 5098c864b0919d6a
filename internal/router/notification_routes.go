// Package router 提供 HTTP 路由注册
// 本文件定义站内通知相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"mall_social_server/internal/infrastructure/middleware"
)

// RegisterNotificationRoutes 注册通知相关路由
// 创建通知是后台动作，走静态令牌网关
func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	notificationGroup := rg.Group("/notification")
	notificationGroup.Use(middleware.PushTokenAuth())
	{
		notificationGroup.POST("/create", rt.handlers.Notification.Create) // 创建通知
	}
}
