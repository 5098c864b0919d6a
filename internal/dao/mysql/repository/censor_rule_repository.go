package repository

import (
	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type censorRuleRepository struct {
	db *gorm.DB
}

// NewCensorRuleRepository 创建敏感词规则 Repository
func NewCensorRuleRepository(db *gorm.DB) CensorRuleRepository {
	return &censorRuleRepository{db: db}
}

// FindActive 按 id 升序返回所有启用规则（即加载顺序）
func (r *censorRuleRepository) FindActive() ([]model.CensorRule, error) {
	var rules []model.CensorRule
	if err := r.db.Where("active = ?", true).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, wrapDBError(err, "查询敏感词规则")
	}
	return rules, nil
}
