package repository

import (
	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository 创建客服 Repository
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

// FindById 根据 ID 查找客服
func (r *managerRepository) FindById(id int64) (*model.ManagerInfo, error) {
	var manager model.ManagerInfo
	if err := r.db.First(&manager, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询客服 id=%d", id)
	}
	return &manager, nil
}

// ExistsById 判断客服是否存在
func (r *managerRepository) ExistsById(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.ManagerInfo{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询客服是否存在 id=%d", id)
	}
	return count > 0, nil
}

// MissingIds 返回给定 ID 中不存在的那部分
func (r *managerRepository) MissingIds(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := r.db.Model(&model.ManagerInfo{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, wrapDBError(err, "批量查询客服")
	}
	foundSet := make(map[int64]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
