// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"
	"time"

	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/dto/respond"
)

// DirectService 私信业务接口
// 处理发送、已读回执、历史查询与未读统计
type DirectService interface {
	// SendDirect 发送私信并广播给双方
	SendDirect(ctx context.Context, senderId, receiverId int64, content string) (*respond.DirectMessagePayload, error)
	// MarkRead 把对方在 upTo 及之前发出的消息标记为已读
	MarkRead(ctx context.Context, readerId, otherId int64, upTo time.Time) (*respond.ReadReceiptPayload, error)
	// GetHistory 查询私信历史，升序返回
	GetHistory(ctx context.Context, userId, otherId int64, after *time.Time, pageSize int) ([]respond.DirectMessagePayload, error)
	// ComputeUnread 统计全局未读与来自指定对端的未读
	ComputeUnread(userId, peerId int64) (*respond.UnreadRespond, error)
}

// RelationService 好友关系业务接口
type RelationService interface {
	// Act 对目标用户执行一个关系动作
	Act(actorId int64, req request.RelationActionRequest) (*respond.RelationRespond, error)
	// Get 查询与目标用户的关系
	Get(actorId, targetId int64) (*respond.RelationRespond, error)
}

// TicketService 工单业务接口
// 处理频道接入鉴权、变更信号与服务端直推
type TicketService interface {
	// AuthorizeOwner 同站用户接入校验
	AuthorizeOwner(ticketId, userId int64) error
	// AuthorizeManager 跨站客服签名接入校验
	AuthorizeManager(ticketId, managerId, expiresUnix int64, signatureHex string) error
	// Nudge 鉴权后广播"工单已变更"信号
	Nudge(ctx context.Context, req request.NudgeRequest) error
	// ServerPush 服务端直推工单消息
	ServerPush(ctx context.Context, req request.TicketPushRequest) (*respond.TicketMessagePayload, error)
	// Assign 指派工单
	Assign(req request.AssignTicketRequest) error
}

// FilterService 敏感词过滤业务接口
type FilterService interface {
	// Reload 重新加载规则快照，返回新版本号
	Reload() (int64, error)
	// Censor 按当前快照遮蔽文本
	Censor(text string) string
	// Version 当前快照版本
	Version() int64
	// GetClientRules 导出客户端规则
	GetClientRules() *respond.FilterRulesRespond
}

// NotificationService 通知业务接口
type NotificationService interface {
	// Create 校验并事务写入一条通知
	Create(req request.CreateNotificationRequest) (*respond.CreateNotificationRespond, error)
}
