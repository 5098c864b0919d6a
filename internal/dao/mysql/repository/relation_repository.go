package repository

import (
	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository 创建好友关系 Repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// FindByPair 按归一化用户对查找关系
func (r *relationRepository) FindByPair(lowId, highId int64) (*model.Relation, error) {
	var relation model.Relation
	err := r.db.Where("user_low_id = ? AND user_high_id = ?", lowId, highId).First(&relation).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询好友关系 low=%d high=%d", lowId, highId)
	}
	return &relation, nil
}

// Create 创建关系行
func (r *relationRepository) Create(relation *model.Relation) error {
	if err := r.db.Create(relation).Error; err != nil {
		return wrapDBError(err, "创建好友关系")
	}
	return nil
}

// Save 保存整行更新
func (r *relationRepository) Save(relation *model.Relation) error {
	if err := r.db.Save(relation).Error; err != nil {
		return wrapDBError(err, "更新好友关系")
	}
	return nil
}
