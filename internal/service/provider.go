// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"mall_social_server/internal/dao/mysql/repository"
	myredis "mall_social_server/internal/dao/redis"
	"mall_social_server/internal/service/direct"
	"mall_social_server/internal/service/filter"
	"mall_social_server/internal/service/hub"
	"mall_social_server/internal/service/notification"
	"mall_social_server/internal/service/relation"
	"mall_social_server/internal/service/ticket"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Direct       DirectService       // 私信 Service
	Relation     RelationService     // 好友关系 Service
	Ticket       TicketService       // 工单 Service
	Filter       FilterService       // 敏感词过滤 Service
	Notification NotificationService // 通知 Service
	Hub          *hub.Hub            // 广播中心
}

// NewServices 创建并注入所有 Service 实例
// 依赖方向：filter 独立 -> direct 依赖 filter 与 hub -> ticket 依赖 hub
func NewServices(repos *repository.Repositories, broadcastHub *hub.Hub, cache myredis.AsyncCacheService) *Services {
	filterSvc := filter.NewFilterService(repos)
	directSvc := direct.NewDirectService(repos, broadcastHub, filterSvc, cache)
	relationSvc := relation.NewRelationService(repos)
	ticketSvc := ticket.NewTicketService(repos, broadcastHub, nil)
	notificationSvc := notification.NewNotificationService(repos)

	return &Services{
		Direct:       directSvc,
		Relation:     relationSvc,
		Ticket:       ticketSvc,
		Filter:       filterSvc,
		Notification: notificationSvc,
		Hub:          broadcastHub,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Direct.SendDirect() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 与 Hub 初始化之后
func InitServices(repos *repository.Repositories, broadcastHub *hub.Hub, cache myredis.AsyncCacheService) {
	Svc = NewServices(repos, broadcastHub, cache)
}
