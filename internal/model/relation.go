// Package model 定义数据库实体模型
// 本文件定义好友关系模型
package model

import (
	"database/sql"
	"time"
)

// Relation 好友关系模型
// 一对用户之间仅一行（按 user_low_id < user_high_id 归一化），首次操作时创建，之后只更新不删除
// requested_by 仅在 PENDING 状态下非空，且必须是该对用户之一
type Relation struct {
	Id             int64          `gorm:"column:id;primaryKey;autoIncrement;comment:关系ID"`
	UserLowId      int64          `gorm:"column:user_low_id;not null;uniqueIndex:idx_relation_pair,priority:1;comment:较小的用户ID"`
	UserHighId     int64          `gorm:"column:user_high_id;not null;uniqueIndex:idx_relation_pair,priority:2;comment:较大的用户ID"`
	Status         int8           `gorm:"column:status;not null;comment:状态，1.申请中，2.好友，3.拉黑，4.已解除，5.已拒绝，6.无关系"`
	RequestedBy    sql.NullInt64  `gorm:"column:requested_by;comment:申请发起方，仅申请中状态非空"`
	FriendNickname sql.NullString `gorm:"column:friend_nickname;type:varchar(30);comment:好友备注"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
}

func (Relation) TableName() string {
	return "relation"
}
