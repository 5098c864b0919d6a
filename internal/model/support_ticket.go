// Package model 定义数据库实体模型
// 本文件定义客服工单及其指派历史模型
package model

import (
	"database/sql"
	"time"
)

// SupportTicket 客服工单模型
// 工单归属一名用户，可选地指派给一名客服
type SupportTicket struct {
	Id                int64         `gorm:"column:id;primaryKey;autoIncrement;comment:工单ID"`
	OwnerUserId       int64         `gorm:"column:owner_user_id;index;not null;comment:工单归属用户ID"`
	AssignedManagerId sql.NullInt64 `gorm:"column:assigned_manager_id;index;comment:当前指派的客服ID"`
	IsClosed          bool          `gorm:"column:is_closed;not null;default:0;comment:是否已关闭"`
	LastMessageAt     sql.NullTime  `gorm:"column:last_message_at;comment:最近一条消息时间"`
	CreatedAt         time.Time     `gorm:"column:created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at"`
}

func (SupportTicket) TableName() string {
	return "support_ticket"
}

// TicketAssignment 工单指派历史
// 追加写入，按 (assigned_at desc, id desc) 取最近一条确定"最后受理人"
type TicketAssignment struct {
	Id                  int64         `gorm:"column:id;primaryKey;autoIncrement;comment:指派记录ID"`
	TicketId            int64         `gorm:"column:ticket_id;index;not null;comment:工单ID"`
	FromManagerId       sql.NullInt64 `gorm:"column:from_manager_id;comment:原客服ID"`
	ToManagerId         int64         `gorm:"column:to_manager_id;not null;comment:新客服ID"`
	AssignedByManagerId sql.NullInt64 `gorm:"column:assigned_by_manager_id;comment:操作人客服ID"`
	AssignedAt          time.Time     `gorm:"column:assigned_at;not null;index;comment:指派时间"`
	Note                string        `gorm:"column:note;type:varchar(200);comment:备注"`
}

func (TicketAssignment) TableName() string {
	return "ticket_assignment"
}
