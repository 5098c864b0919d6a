// Package model 定义数据库实体模型
// 本文件定义私信会话模型
package model

import "time"

// Conversation 私信会话模型
// 一对用户之间至多一行（按 party_low_id < party_high_id 归一化），首次发信或标记已读时懒创建，永不删除
// is_manager_channel 区分普通私信与客服侧会话，同一对用户两类会话互不干扰
type Conversation struct {
	Id               int64     `gorm:"column:id;primaryKey;autoIncrement;comment:会话ID"`
	PartyLowId       int64     `gorm:"column:party_low_id;not null;uniqueIndex:idx_conv_pair,priority:1;comment:较小的用户ID"`
	PartyHighId      int64     `gorm:"column:party_high_id;not null;uniqueIndex:idx_conv_pair,priority:2;comment:较大的用户ID"`
	IsManagerChannel bool      `gorm:"column:is_manager_channel;not null;default:0;uniqueIndex:idx_conv_pair,priority:3;comment:是否客服会话"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (Conversation) TableName() string {
	return "conversation"
}

// PartyIsLow 判断 userId 在该会话中是否为较小一方
func (c *Conversation) PartyIsLow(userId int64) bool {
	return userId == c.PartyLowId
}
