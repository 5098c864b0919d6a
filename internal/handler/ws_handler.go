// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 接入相关的 API 请求
package handler

import (
	"net/http"
	"strconv"

	"mall_social_server/internal/service"
	"mall_social_server/internal/service/hub"
	"mall_social_server/pkg/errorx"
	jwtutil "mall_social_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsHandler WebSocket 接入处理器
// 私信连接订阅自己的用户频道并可上行指令；
// 工单连接经鉴权后订阅工单频道，断开即离开
type WsHandler struct {
	broadcastHub *hub.Hub
	directSvc    service.DirectService
	ticketSvc    service.TicketService
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(broadcastHub *hub.Hub, directSvc service.DirectService, ticketSvc service.TicketService) *WsHandler {
	return &WsHandler{
		broadcastHub: broadcastHub,
		directSvc:    directSvc,
		ticketSvc:    ticketSvc,
	}
}

// resolveUser 解析连接方用户 id
// 浏览器的 WebSocket 无法携带自定义 Header，支持 ?token= 兜底
func (h *WsHandler) resolveUser(c *gin.Context) int64 {
	if userId := callerId(c); userId > 0 {
		return userId
	}
	token := c.Query("token")
	if token == "" {
		return 0
	}
	claims, err := jwtutil.ParseToken(token)
	if err != nil || claims.Subject != "access_token" {
		return 0
	}
	return claims.UserIdInt64()
}

// Connect 私信长连接
// GET /wss?token=
// 订阅本人的用户频道，上行支持 send / mark_read 指令
func (h *WsHandler) Connect(c *gin.Context) {
	userId := h.resolveUser(c)
	if userId <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeNotLoggedIn,
			"msg":  "请先登录",
		})
		return
	}
	if _, err := hub.NewUserConn(c, h.broadcastHub, h.directSvc, userId, hub.UserChannel(userId)); err != nil {
		zap.L().Error("ws upgrade error", zap.Error(err))
	}
}

// JoinTicket 同站用户加入工单频道
// GET /wss/ticket?ticket_id=&token=
// 必须是工单归属人，成功后收到 joined 事件
func (h *WsHandler) JoinTicket(c *gin.Context) {
	userId := h.resolveUser(c)
	ticketId, err := strconv.ParseInt(c.Query("ticket_id"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "ticket_id 不是合法的工单 id"))
		return
	}
	if err := h.ticketSvc.AuthorizeOwner(ticketId, userId); err != nil {
		HandleError(c, err)
		return
	}
	h.joinChannel(c, ticketId, userId)
}

// JoinTicketAsManager 跨站客服加入工单频道
// GET /wss/ticket/manager?ticket_id=&manager_id=&expires=&signature=
// 签名鉴权通过后订阅，成功后收到 joined 事件
func (h *WsHandler) JoinTicketAsManager(c *gin.Context) {
	ticketId, err := strconv.ParseInt(c.Query("ticket_id"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "ticket_id 不是合法的工单 id"))
		return
	}
	managerId, err := strconv.ParseInt(c.Query("manager_id"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "manager_id 不是合法的客服 id"))
		return
	}
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "expires 不是合法的 Unix 秒"))
		return
	}
	if err := h.ticketSvc.AuthorizeManager(ticketId, managerId, expires, c.Query("signature")); err != nil {
		HandleError(c, err)
		return
	}
	h.joinChannel(c, ticketId, 0)
}

// joinChannel 鉴权通过后的公共接入路径
// 工单连接是纯订阅端，不接受上行指令
func (h *WsHandler) joinChannel(c *gin.Context, ticketId, userId int64) {
	conn, err := hub.NewUserConn(c, h.broadcastHub, nil, userId, hub.TicketChannel(ticketId))
	if err != nil {
		zap.L().Error("ws upgrade error", zap.Error(err))
		return
	}
	h.broadcastHub.DeliverTo(conn.Sub, hub.EventJoined, gin.H{"ticketId": ticketId})
}
