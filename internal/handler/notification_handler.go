// Package handler 提供 HTTP 请求处理器
// 本文件处理站内通知相关的 API 请求
package handler

import (
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知请求处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// Create 创建通知
// POST /notification/create
// 请求体: request.CreateNotificationRequest
// 响应: respond.CreateNotificationRespond
func (h *NotificationHandler) Create(c *gin.Context) {
	var req request.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.notificationSvc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
