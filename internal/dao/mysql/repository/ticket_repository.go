package repository

import (
	"time"

	"mall_social_server/internal/model"

	"gorm.io/gorm"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository 创建工单 Repository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// FindById 根据 ID 查找工单
func (r *ticketRepository) FindById(id int64) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	if err := r.db.First(&ticket, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询工单 id=%d", id)
	}
	return &ticket, nil
}

// LastAssignment 返回最近一条指派记录，按 (assigned_at desc, id desc)
func (r *ticketRepository) LastAssignment(ticketId int64) (*model.TicketAssignment, error) {
	var assignment model.TicketAssignment
	err := r.db.Where("ticket_id = ?", ticketId).
		Order("assigned_at DESC, id DESC").
		First(&assignment).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询工单指派历史 ticket_id=%d", ticketId)
	}
	return &assignment, nil
}

// CreateAssignment 追加一条指派记录
func (r *ticketRepository) CreateAssignment(assignment *model.TicketAssignment) error {
	if err := r.db.Create(assignment).Error; err != nil {
		return wrapDBError(err, "创建工单指派记录")
	}
	return nil
}

// UpdateAssignedManager 更新工单当前指派的客服
func (r *ticketRepository) UpdateAssignedManager(ticketId, managerId int64) error {
	err := r.db.Model(&model.SupportTicket{}).
		Where("id = ?", ticketId).
		Update("assigned_manager_id", managerId).Error
	if err != nil {
		return wrapDBErrorf(err, "更新工单指派 ticket_id=%d", ticketId)
	}
	return nil
}

// UpdateLastMessageAt 更新工单最近消息时间
func (r *ticketRepository) UpdateLastMessageAt(ticketId int64, t time.Time) error {
	err := r.db.Model(&model.SupportTicket{}).
		Where("id = ?", ticketId).
		Update("last_message_at", t).Error
	if err != nil {
		return wrapDBErrorf(err, "更新工单最近消息时间 ticket_id=%d", ticketId)
	}
	return nil
}
