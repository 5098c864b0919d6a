// Package handler 提供 HTTP 请求处理器
// 本文件处理好友关系相关的 API 请求
package handler

import (
	"strconv"

	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/service"
	"mall_social_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// RelationHandler 好友关系请求处理器
type RelationHandler struct {
	relationSvc service.RelationService
}

// NewRelationHandler 创建好友关系处理器实例
func NewRelationHandler(relationSvc service.RelationService) *RelationHandler {
	return &RelationHandler{relationSvc: relationSvc}
}

// Act 执行一个关系动作
// POST /relation/action
// 请求体: request.RelationActionRequest
// 响应: respond.RelationRespond
func (h *RelationHandler) Act(c *gin.Context) {
	var req request.RelationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.relationSvc.Act(callerId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 查询与目标用户的关系
// GET /relation/get?target_id=
// 响应: respond.RelationRespond
func (h *RelationHandler) Get(c *gin.Context) {
	targetId, err := strconv.ParseInt(c.Query("target_id"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "target_id 不是合法的用户 id"))
		return
	}
	data, err := h.relationSvc.Get(callerId(c), targetId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
