// Package ticket 实现工单频道的接入鉴权与服务端直推
// 同站用户凭工单归属接入；跨站客服凭共享密钥的 HMAC 签名接入，
// 签名常数时间比较，过期或前向偏移超窗一律拒绝且不透露具体原因
package ticket

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mall_social_server/internal/config"
	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/dto/respond"
	"mall_social_server/internal/model"
	"mall_social_server/internal/service/hub"
	"mall_social_server/pkg/errorx"
)

// Broadcaster 事件广播接口，由 hub.Hub 实现
type Broadcaster interface {
	Publish(ctx context.Context, channel, event string, data any) error
}

// SupervisorCheck 主管越权判断，可插拔
type SupervisorCheck func(managerId int64) bool

// ticketService 工单业务逻辑实现
type ticketService struct {
	repos        *repository.Repositories
	broadcaster  Broadcaster
	isSupervisor SupervisorCheck
	now          func() time.Time
}

// NewTicketService 构造函数
// supervisor 为 nil 时默认查客服表的主管标记
func NewTicketService(repos *repository.Repositories, broadcaster Broadcaster, supervisor SupervisorCheck) *ticketService {
	s := &ticketService{
		repos:       repos,
		broadcaster: broadcaster,
		now:         time.Now,
	}
	if supervisor == nil {
		supervisor = s.managerIsSupervisor
	}
	s.isSupervisor = supervisor
	return s
}

// managerIsSupervisor 默认主管判断：查客服表标记
func (s *ticketService) managerIsSupervisor(managerId int64) bool {
	manager, err := s.repos.Manager.FindById(managerId)
	if err != nil {
		if !errorx.IsNotFound(err) {
			zap.L().Error("find manager error", zap.Error(err))
		}
		return false
	}
	return manager.IsSupervisor
}

// Sign 计算跨站接入签名
// 消息体为 "{ticketId}|{managerId}|{expiresUnix}" 的 ASCII 串，输出十六进制
func Sign(sharedSecret string, ticketId, managerId, expiresUnix int64) string {
	mac := hmac.New(sha256.New, []byte(sharedSecret))
	fmt.Fprintf(mac, "%d|%d|%d", ticketId, managerId, expiresUnix)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature 校验签名与有效期
// 已过期、前向偏移超窗、签名不符都返回同一个错误，不帮助攻击方收窄输入
func (s *ticketService) verifySignature(ticketId, managerId, expiresUnix int64, signatureHex string) error {
	conf := config.GetConfig().SupportConfig
	now := s.now().Unix()
	if expiresUnix < now {
		return errorx.ErrBadSignature
	}
	if expiresUnix-now > int64(conf.MaxForwardSkew) {
		return errorx.ErrBadSignature
	}
	expected := Sign(conf.SharedSecret, ticketId, managerId, expiresUnix)
	if !hmac.Equal([]byte(expected), []byte(signatureHex)) {
		return errorx.ErrBadSignature
	}
	return nil
}

// AuthorizeOwner 同站用户接入：必须是工单归属人
func (s *ticketService) AuthorizeOwner(ticketId, userId int64) error {
	if userId <= 0 {
		return errorx.ErrNotLoggedIn
	}
	ticket, err := s.findTicket(ticketId)
	if err != nil {
		return err
	}
	if ticket.OwnerUserId != userId {
		return errorx.ErrForbidden
	}
	return nil
}

// AuthorizeManager 跨站客服接入
// 签名有效后，当前指派、最近受理人或主管三者其一即放行
func (s *ticketService) AuthorizeManager(ticketId, managerId, expiresUnix int64, signatureHex string) error {
	if err := s.verifySignature(ticketId, managerId, expiresUnix, signatureHex); err != nil {
		return err
	}
	ticket, err := s.findTicket(ticketId)
	if err != nil {
		return err
	}
	if ticket.AssignedManagerId.Valid && ticket.AssignedManagerId.Int64 == managerId {
		return nil
	}
	last, err := s.repos.Ticket.LastAssignment(ticketId)
	if err == nil && last.ToManagerId == managerId {
		return nil
	}
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find last assignment error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if s.isSupervisor(managerId) {
		return nil
	}
	return errorx.ErrForbidden
}

// Nudge 重新鉴权后向工单频道广播"已变更"信号
// 信号不携带内容，客户端收到后自行重新拉取
func (s *ticketService) Nudge(ctx context.Context, req request.NudgeRequest) error {
	if err := s.AuthorizeManager(req.TicketId, req.ManagerId, req.Expires, req.Signature); err != nil {
		return err
	}
	return s.publish(ctx, req.TicketId, hub.EventTicketChanged, nil)
}

// ServerPush 服务端直推一条工单消息
// 调用方已过静态令牌校验；刷新工单最近消息时间后广播完整载荷
func (s *ticketService) ServerPush(ctx context.Context, req request.TicketPushRequest) (*respond.TicketMessagePayload, error) {
	sentAt, err := time.Parse(time.RFC3339, req.SentAt)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "sent_at 不是合法的 RFC3339 时间")
	}
	if _, err := s.findTicket(req.TicketId); err != nil {
		return nil, err
	}

	sentAt = sentAt.UTC()
	if err := s.repos.Ticket.UpdateLastMessageAt(req.TicketId, sentAt); err != nil {
		zap.L().Error("update last message at error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	payload := &respond.TicketMessagePayload{
		TicketId:     req.TicketId,
		SenderIsUser: req.SenderIsUser,
		SenderId:     req.SenderId,
		Text:         req.Text,
		SentAtIso:    sentAt.Format(time.RFC3339),
	}
	if err := s.publish(ctx, req.TicketId, hub.EventTicketMessage, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Assign 指派工单：追加历史并更新当前指派，同一事务完成
func (s *ticketService) Assign(req request.AssignTicketRequest) error {
	ticket, err := s.findTicket(req.TicketId)
	if err != nil {
		return err
	}
	exists, err := s.repos.Manager.ExistsById(req.ToManagerId)
	if err != nil {
		zap.L().Error("check manager exists error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if !exists {
		return errorx.Newf(errorx.CodeManagerNotFound, "客服 %d 不存在", req.ToManagerId)
	}

	assignment := &model.TicketAssignment{
		TicketId:      req.TicketId,
		FromManagerId: ticket.AssignedManagerId,
		ToManagerId:   req.ToManagerId,
		AssignedAt:    s.now().UTC(),
		Note:          req.Note,
	}
	if req.AssignedByManagerId != nil {
		assignment.AssignedByManagerId = sql.NullInt64{Int64: *req.AssignedByManagerId, Valid: true}
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Ticket.CreateAssignment(assignment); err != nil {
			return err
		}
		return txRepos.Ticket.UpdateAssignedManager(req.TicketId, req.ToManagerId)
	})
	if err != nil {
		zap.L().Error("assign ticket error", zap.Error(err))
		return errorx.Wrap(err, errorx.CodeDBError, "指派工单失败")
	}
	return nil
}

// findTicket 查询工单，缺失按 Forbidden 处理，避免探测工单是否存在
func (s *ticketService) findTicket(ticketId int64) (*model.SupportTicket, error) {
	ticket, err := s.repos.Ticket.FindById(ticketId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrForbidden
		}
		zap.L().Error("find ticket error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return ticket, nil
}

// publish 向工单频道广播事件
func (s *ticketService) publish(ctx context.Context, ticketId int64, event string, data any) error {
	if err := s.broadcaster.Publish(ctx, hub.TicketChannel(ticketId), event, data); err != nil {
		zap.L().Error("publish ticket event error",
			zap.Int64("ticketId", ticketId), zap.String("event", event), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
