package repository

import (
	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// SourceExists 判断通知来源是否存在
func (r *notificationRepository) SourceExists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.NotificationSource{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询通知来源 id=%d", id)
	}
	return count > 0, nil
}

// ActionExists 判断通知动作是否存在
func (r *notificationRepository) ActionExists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.NotificationAction{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询通知动作 id=%d", id)
	}
	return count > 0, nil
}

// GroupExists 判断通知分组是否存在
func (r *notificationRepository) GroupExists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&model.NotificationGroup{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询通知分组 id=%d", id)
	}
	return count > 0, nil
}

// Create 写入通知
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// CreateRecipients 批量写入收件人
func (r *notificationRepository) CreateRecipients(recipients []model.NotificationRecipient) error {
	if len(recipients) == 0 {
		return nil
	}
	if err := r.db.Create(&recipients).Error; err != nil {
		return wrapDBError(err, "创建通知收件人")
	}
	return nil
}
