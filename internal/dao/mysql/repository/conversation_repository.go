package repository

import (
	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话 Repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindByPair 按归一化用户对查找会话
func (r *conversationRepository) FindByPair(lowId, highId int64, isManagerChannel bool) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.Where("party_low_id = ? AND party_high_id = ? AND is_manager_channel = ?",
		lowId, highId, isManagerChannel).First(&conversation).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会话 low=%d high=%d", lowId, highId)
	}
	return &conversation, nil
}

// Create 创建会话
func (r *conversationRepository) Create(conversation *model.Conversation) error {
	if err := r.db.Create(conversation).Error; err != nil {
		return wrapDBError(err, "创建会话")
	}
	return nil
}
