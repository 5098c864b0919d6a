package repository

import (
	"context"
	"time"

	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 写入消息
func (r *messageRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindAfter 查询严格晚于 after 的消息，按发送时间升序
func (r *messageRepository) FindAfter(ctx context.Context, conversationId int64, after time.Time) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND sent_at > ?", conversationId, after).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询消息 conversation_id=%d", conversationId)
	}
	return messages, nil
}

// FindLatest 查询最近 limit 条消息，按发送时间降序返回（调用方负责翻转）
func (r *messageRepository) FindLatest(ctx context.Context, conversationId int64, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Order("sent_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询最近消息 conversation_id=%d", conversationId)
	}
	return messages, nil
}

// MarkReadUpTo 将指定发送方在 upTo 及之前发出的未读消息标记为已读
// 只更新 is_read = false 的行，重复调用或 upTo 回退不会把消息改回未读
func (r *messageRepository) MarkReadUpTo(conversationId int64, senderIsPartyLow bool, upTo, readAt time.Time) (int64, error) {
	res := r.db.Model(&model.ChatMessage{}).
		Where("conversation_id = ? AND sender_is_party_low = ? AND is_read = ? AND sent_at <= ?",
			conversationId, senderIsPartyLow, false, upTo).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "标记已读 conversation_id=%d", conversationId)
	}
	return res.RowsAffected, nil
}

// CountUnreadInConversation 统计会话内指定发送方的未读消息数
func (r *messageRepository) CountUnreadInConversation(conversationId int64, senderIsPartyLow bool) (int64, error) {
	var count int64
	err := r.db.Model(&model.ChatMessage{}).
		Where("conversation_id = ? AND sender_is_party_low = ? AND is_read = ?",
			conversationId, senderIsPartyLow, false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计未读 conversation_id=%d", conversationId)
	}
	return count, nil
}

// CountUnreadForUser 统计发给该用户的所有未读消息数（跨会话）
// 用户是较小一方时，未读消息来自较大一方，反之亦然
func (r *messageRepository) CountUnreadForUser(userId int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.ChatMessage{}).
		Joins("JOIN conversation ON conversation.id = chat_message.conversation_id").
		Where("chat_message.is_read = ?", false).
		Where("(conversation.party_low_id = ? AND chat_message.sender_is_party_low = ?) OR (conversation.party_high_id = ? AND chat_message.sender_is_party_low = ?)",
			userId, false, userId, true).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计用户未读 user_id=%d", userId)
	}
	return count, nil
}
