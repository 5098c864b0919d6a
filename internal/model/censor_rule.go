package model

import "time"

// CensorRule 敏感词规则
// 过滤器按 id 升序加载 active 规则并编译为不可变快照
type CensorRule struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement;comment:规则ID"`
	Word        string    `gorm:"column:word;type:varchar(100);not null;comment:敏感词（字面量，大小写不敏感）"`
	Replacement string    `gorm:"column:replacement;type:varchar(100);not null;comment:替换文本"`
	Active      bool      `gorm:"column:active;not null;default:1;comment:是否启用"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (CensorRule) TableName() string {
	return "censor_rule"
}
