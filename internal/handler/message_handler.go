// Package handler 提供 HTTP 请求处理器
// 本文件处理私信相关的 API 请求
package handler

import (
	"time"

	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/service"
	"mall_social_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 私信请求处理器
// 通过构造函数注入 DirectService，遵循依赖倒置原则
type MessageHandler struct {
	directSvc service.DirectService
}

// NewMessageHandler 创建私信处理器实例
func NewMessageHandler(directSvc service.DirectService) *MessageHandler {
	return &MessageHandler{directSvc: directSvc}
}

// Send 发送私信
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.DirectMessagePayload
func (h *MessageHandler) Send(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.directSvc.SendDirect(c.Request.Context(), callerId(c), req.ReceiverId, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记已读
// POST /message/markRead
// 请求体: request.MarkReadRequest
// 响应: respond.ReadReceiptPayload
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	upTo, err := time.Parse(time.RFC3339, req.UpTo)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "up_to 不是合法的 RFC3339 时间"))
		return
	}
	data, err := h.directSvc.MarkRead(c.Request.Context(), callerId(c), req.OtherId, upTo)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetHistory 查询私信历史
// GET /message/history?other_id=&after=&page_size=
// 响应: []respond.DirectMessagePayload（升序）
func (h *MessageHandler) GetHistory(c *gin.Context) {
	var req request.GetHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	var after *time.Time
	if req.After != "" {
		parsed, err := time.Parse(time.RFC3339, req.After)
		if err != nil {
			HandleError(c, errorx.New(errorx.CodeInvalidParam, "after 不是合法的 RFC3339 时间"))
			return
		}
		after = &parsed
	}
	data, err := h.directSvc.GetHistory(c.Request.Context(), callerId(c), req.OtherId, after, req.PageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUnread 查询未读数
// GET /message/unread?peer_id=
// 响应: respond.UnreadRespond
func (h *MessageHandler) GetUnread(c *gin.Context) {
	var req request.UnreadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.directSvc.ComputeUnread(callerId(c), req.PeerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
