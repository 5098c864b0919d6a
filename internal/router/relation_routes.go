// Package router 提供 HTTP 路由注册
// 本文件定义好友关系相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"mall_social_server/internal/infrastructure/middleware"
)

// RegisterRelationRoutes 注册好友关系相关路由（需要认证）
func (rt *Router) RegisterRelationRoutes(rg *gin.RouterGroup) {
	relationGroup := rg.Group("/relation")
	relationGroup.Use(middleware.JWTAuth())
	{
		relationGroup.POST("/action", rt.handlers.Relation.Act) // 执行关系动作
		relationGroup.GET("/get", rt.handlers.Relation.Get)     // 查询关系
	}
}
