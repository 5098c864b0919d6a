// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"mall_social_server/internal/handler"
)

// Router 路由管理器，持有 Handler 聚合实例
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用，按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	root := engine.Group("")
	rt.RegisterMessageRoutes(root)      // 私信路由
	rt.RegisterRelationRoutes(root)     // 好友关系路由
	rt.RegisterNotificationRoutes(root) // 通知路由
	rt.RegisterTicketRoutes(root)       // 工单路由
	rt.RegisterFilterRoutes(root)       // 敏感词过滤路由
	rt.RegisterWebSocketRoutes(root)    // WebSocket 路由
}
