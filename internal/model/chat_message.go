// Package model 定义数据库实体模型
// 本文件定义私信消息模型
package model

import (
	"database/sql"
	"time"
)

// ChatMessage 私信消息模型
// 主键为雪花 ID，会话内的消息顺序以该 ID 的插入顺序为准，而非跨副本的墙钟时间
// sent_at 写入后不可变；read_at 仅在标记已读时被写入一次，与 is_read 同步变化
type ChatMessage struct {
	Id               int64        `gorm:"column:id;primaryKey;type:bigint;comment:消息雪花ID"`
	ConversationId   int64        `gorm:"column:conversation_id;index;not null;comment:所属会话ID"`
	SenderIsPartyLow bool         `gorm:"column:sender_is_party_low;not null;comment:发送方是否为会话中较小ID一方"`
	Content          string       `gorm:"column:content;type:TEXT;not null;comment:消息内容"`
	IsRead           bool         `gorm:"column:is_read;not null;default:0;comment:是否已读"`
	ReadAt           sql.NullTime `gorm:"column:read_at;comment:已读时间"`
	SentAt           time.Time    `gorm:"column:sent_at;not null;index;comment:发送时间(UTC)"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
