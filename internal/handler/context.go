// Package handler 提供 HTTP 请求处理器
// 本文件提供从请求上下文读取调用方身份的辅助方法
package handler

import "github.com/gin-gonic/gin"

// CtxUserIdKey JWT 中间件写入上下文的用户 id 键
const CtxUserIdKey = "user_id"

// callerId 取出中间件解析好的调用方用户 id
// 未经过认证中间件或解析失败时返回 0，由业务层按未登录处理
func callerId(c *gin.Context) int64 {
	value, ok := c.Get(CtxUserIdKey)
	if !ok {
		return 0
	}
	userId, ok := value.(int64)
	if !ok {
		return 0
	}
	return userId
}
