// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"context"
	"time"

	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindById 根据 ID 查找用户
	FindById(id int64) (*model.UserInfo, error)
	// ExistsById 判断用户是否存在
	ExistsById(id int64) (bool, error)
	// MissingIds 返回给定 ID 中不存在的那部分
	MissingIds(ids []int64) ([]int64, error)
}

// ManagerRepository 客服数据访问接口
type ManagerRepository interface {
	// FindById 根据 ID 查找客服
	FindById(id int64) (*model.ManagerInfo, error)
	// ExistsById 判断客服是否存在
	ExistsById(id int64) (bool, error)
	// MissingIds 返回给定 ID 中不存在的那部分
	MissingIds(ids []int64) ([]int64, error)
}

// ConversationRepository 私信会话数据访问接口
type ConversationRepository interface {
	// FindByPair 按归一化用户对查找会话
	FindByPair(lowId, highId int64, isManagerChannel bool) (*model.Conversation, error)
	// Create 创建会话
	Create(conversation *model.Conversation) error
}

// MessageRepository 私信消息数据访问接口
type MessageRepository interface {
	// Create 写入消息
	Create(message *model.ChatMessage) error
	// FindAfter 查询严格晚于 after 的消息，按发送时间升序
	FindAfter(ctx context.Context, conversationId int64, after time.Time) ([]model.ChatMessage, error)
	// FindLatest 查询最近 limit 条消息，按发送时间降序返回
	FindLatest(ctx context.Context, conversationId int64, limit int) ([]model.ChatMessage, error)
	// MarkReadUpTo 将指定发送方在 upTo 及之前发出的未读消息标记为已读，返回更新行数
	MarkReadUpTo(conversationId int64, senderIsPartyLow bool, upTo, readAt time.Time) (int64, error)
	// CountUnreadInConversation 统计会话内指定发送方的未读消息数
	CountUnreadInConversation(conversationId int64, senderIsPartyLow bool) (int64, error)
	// CountUnreadForUser 统计发给该用户的所有未读消息数（跨会话）
	CountUnreadForUser(userId int64) (int64, error)
}

// RelationRepository 好友关系数据访问接口
type RelationRepository interface {
	// FindByPair 按归一化用户对查找关系
	FindByPair(lowId, highId int64) (*model.Relation, error)
	// Create 创建关系行
	Create(relation *model.Relation) error
	// Save 保存整行更新
	Save(relation *model.Relation) error
}

// TicketRepository 客服工单数据访问接口
type TicketRepository interface {
	// FindById 根据 ID 查找工单
	FindById(id int64) (*model.SupportTicket, error)
	// LastAssignment 返回最近一条指派记录，按 (assigned_at desc, id desc)
	LastAssignment(ticketId int64) (*model.TicketAssignment, error)
	// CreateAssignment 追加一条指派记录
	CreateAssignment(assignment *model.TicketAssignment) error
	// UpdateAssignedManager 更新工单当前指派的客服
	UpdateAssignedManager(ticketId, managerId int64) error
	// UpdateLastMessageAt 更新工单最近消息时间
	UpdateLastMessageAt(ticketId int64, t time.Time) error
}

// CensorRuleRepository 敏感词规则数据访问接口
type CensorRuleRepository interface {
	// FindActive 按 id 升序返回所有启用规则
	FindActive() ([]model.CensorRule, error)
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// SourceExists 判断通知来源是否存在
	SourceExists(id int64) (bool, error)
	// ActionExists 判断通知动作是否存在
	ActionExists(id int64) (bool, error)
	// GroupExists 判断通知分组是否存在
	GroupExists(id int64) (bool, error)
	// Create 写入通知
	Create(notification *model.Notification) error
	// CreateRecipients 批量写入收件人
	CreateRecipients(recipients []model.NotificationRecipient) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
// 字段导出以便测试注入内存实现
type Repositories struct {
	db           *gorm.DB
	User         UserRepository
	Manager      ManagerRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Relation     RelationRepository
	Ticket       TicketRepository
	CensorRule   CensorRuleRepository
	Notification NotificationRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Manager:      NewManagerRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
		Relation:     NewRelationRepository(db),
		Ticket:       NewTicketRepository(db),
		CensorRule:   NewCensorRuleRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// NewTestRepositories 以内存实现组装聚合，供测试使用（无事务数据源）
func NewTestRepositories(fill func(r *Repositories)) *Repositories {
	r := &Repositories{}
	fill(r)
	return r
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 无事务数据源（测试内存实现）时直接执行
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
