package model

import (
	"time"

	"gorm.io/gorm"
)

// ManagerInfo 客服/管理员模型
// 客服账号属于另一套站点，本服务仅凭 ID 做存在性与授权校验
type ManagerInfo struct {
	Id           int64          `gorm:"column:id;primaryKey;autoIncrement;comment:客服ID"`
	Name         string         `gorm:"column:name;type:varchar(30);not null;comment:姓名"`
	IsSupervisor bool           `gorm:"column:is_supervisor;not null;default:0;comment:是否主管（可越权接入任意工单）"`
	Status       int8           `gorm:"column:status;not null;default:0;comment:状态，0.正常，1.禁用"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (ManagerInfo) TableName() string {
	return "manager_info"
}
