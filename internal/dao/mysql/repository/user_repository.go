package repository

import (
	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindById 根据 ID 查找用户
func (r *userRepository) FindById(id int64) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 id=%d", id)
	}
	return &user, nil
}

// ExistsById 判断用户是否存在
func (r *userRepository) ExistsById(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.UserInfo{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询用户是否存在 id=%d", id)
	}
	return count > 0, nil
}

// MissingIds 返回给定 ID 中不存在的那部分
func (r *userRepository) MissingIds(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := r.db.Model(&model.UserInfo{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
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
