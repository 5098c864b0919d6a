// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 接入相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由
// 浏览器无法在 WebSocket 握手时携带自定义 Header，
// 身份统一由 Handler 从 ?token= 解析，不挂 JWT 中间件
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	// 私信连接入口
	// 请求示例: wss://host:port/wss?token=xxx
	rg.GET("/wss", rt.handlers.Ws.Connect)
	// 工单频道接入
	rg.GET("/wss/ticket", rt.handlers.Ws.JoinTicket)                  // 同站用户
	rg.GET("/wss/ticket/manager", rt.handlers.Ws.JoinTicketAsManager) // 跨站客服
}
