// Package handler 提供 HTTP 请求处理器
// 本文件处理工单相关的 API 请求（变更信号、服务端直推、指派）
package handler

import (
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/service"

	"github.com/gin-gonic/gin"
)

// TicketHandler 工单请求处理器
type TicketHandler struct {
	ticketSvc service.TicketService
}

// NewTicketHandler 创建工单处理器实例
func NewTicketHandler(ticketSvc service.TicketService) *TicketHandler {
	return &TicketHandler{ticketSvc: ticketSvc}
}

// Nudge 客服触发"工单已变更"信号
// POST /ticket/nudge
// 请求体: request.NudgeRequest（带跨站签名）
func (h *TicketHandler) Nudge(c *gin.Context) {
	var req request.NudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.ticketSvc.Nudge(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ServerPush 服务端直推工单消息（静态令牌网关之后）
// POST /internal/ticket/push
// 请求体: request.TicketPushRequest
// 响应: respond.TicketMessagePayload
func (h *TicketHandler) ServerPush(c *gin.Context) {
	var req request.TicketPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.ticketSvc.ServerPush(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Assign 指派工单（静态令牌网关之后）
// POST /internal/ticket/assign
// 请求体: request.AssignTicketRequest
func (h *TicketHandler) Assign(c *gin.Context) {
	var req request.AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.ticketSvc.Assign(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
