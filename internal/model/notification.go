// Package model 定义数据库实体模型
// 本文件定义站内通知及其收件人模型
package model

import (
	"database/sql"
	"time"
)

// NotificationSource 通知来源（如订单、社区、客服）
type NotificationSource struct {
	Id   int64  `gorm:"column:id;primaryKey;autoIncrement;comment:来源ID"`
	Name string `gorm:"column:name;type:varchar(50);not null;comment:来源名称"`
}

func (NotificationSource) TableName() string {
	return "notification_source"
}

// NotificationAction 通知动作（如下单成功、收到回复）
type NotificationAction struct {
	Id   int64  `gorm:"column:id;primaryKey;autoIncrement;comment:动作ID"`
	Name string `gorm:"column:name;type:varchar(50);not null;comment:动作名称"`
}

func (NotificationAction) TableName() string {
	return "notification_action"
}

// NotificationGroup 通知分组，用于客户端折叠展示
type NotificationGroup struct {
	Id   int64  `gorm:"column:id;primaryKey;autoIncrement;comment:分组ID"`
	Code string `gorm:"column:code;type:char(20);uniqueIndex;not null;comment:分组编码"`
	Name string `gorm:"column:name;type:varchar(50);not null;comment:分组名称"`
}

func (NotificationGroup) TableName() string {
	return "notification_group"
}

// Notification 通知模型
// 发送方身份在写入时由 sender_kind 显式标明，不再靠判空推断
type Notification struct {
	Id              int64         `gorm:"column:id;primaryKey;autoIncrement;comment:通知ID"`
	SourceId        int64         `gorm:"column:source_id;not null;comment:来源ID"`
	ActionId        int64         `gorm:"column:action_id;not null;comment:动作ID"`
	GroupId         sql.NullInt64 `gorm:"column:group_id;comment:分组ID"`
	SenderKind      int8          `gorm:"column:sender_kind;not null;comment:发送方身份，0.系统，1.用户，2.客服"`
	SenderUserId    sql.NullInt64 `gorm:"column:sender_user_id;comment:发送用户ID"`
	SenderManagerId sql.NullInt64 `gorm:"column:sender_manager_id;comment:发送客服ID"`
	Title           string        `gorm:"column:title;type:varchar(100);not null;comment:标题"`
	Message         string        `gorm:"column:message;type:TEXT;comment:正文"`
	CreatedAt       time.Time     `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notification"
}

// NotificationRecipient 通知收件人
// user_id 与 manager_id 恰有一个非空；一条通知至少有一行收件人
type NotificationRecipient struct {
	Id             int64         `gorm:"column:id;primaryKey;autoIncrement;comment:收件记录ID"`
	NotificationId int64         `gorm:"column:notification_id;index;not null;comment:通知ID"`
	UserId         sql.NullInt64 `gorm:"column:user_id;index;comment:收件用户ID"`
	ManagerId      sql.NullInt64 `gorm:"column:manager_id;index;comment:收件客服ID"`
	ReadAt         sql.NullTime  `gorm:"column:read_at;comment:已读时间"`
}

func (NotificationRecipient) TableName() string {
	return "notification_recipient"
}
