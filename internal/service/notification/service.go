// Package notification 实现站内通知的校验写入
// 所有引用完整性校验在任何写入之前完成（fail-fast），
// 校验通过后通知与全部收件人行在同一事务内落库，失败整体回滚
package notification

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"mall_social_server/internal/config"
	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/dto/respond"
	"mall_social_server/internal/model"
	"mall_social_server/pkg/enum/notification/sender_kind_enum"
	"mall_social_server/pkg/errorx"
)

// notificationService 通知业务逻辑实现
type notificationService struct {
	repos *repository.Repositories
}

// NewNotificationService 构造函数
func NewNotificationService(repos *repository.Repositories) *notificationService {
	return &notificationService{repos: repos}
}

// Create 创建一条通知并批量写入收件人
// 校验顺序：长度上限 -> 来源 -> 动作 -> 分组 -> 至少一个收件人 -> 收件人存在 -> 发送方存在
func (n *notificationService) Create(req request.CreateNotificationRequest) (*respond.CreateNotificationRespond, error) {
	conf := config.GetConfig().NotificationConfig
	if len([]rune(req.Title)) > conf.TitleMaxLength {
		return nil, errorx.Newf(errorx.CodeTitleTooLong, "标题最长 %d 个字符", conf.TitleMaxLength)
	}
	if len([]rune(req.Message)) > conf.MessageMaxLength {
		return nil, errorx.Newf(errorx.CodeMessageTooLong, "正文最长 %d 个字符", conf.MessageMaxLength)
	}

	if err := n.checkLookup(n.repos.Notification.SourceExists, req.SourceId, "通知来源"); err != nil {
		return nil, err
	}
	if err := n.checkLookup(n.repos.Notification.ActionExists, req.ActionId, "通知动作"); err != nil {
		return nil, err
	}
	if req.GroupId != nil {
		if err := n.checkLookup(n.repos.Notification.GroupExists, *req.GroupId, "通知分组"); err != nil {
			return nil, err
		}
	}

	if len(req.ToUserIds) == 0 && len(req.ToManagerIds) == 0 {
		return nil, errorx.New(errorx.CodeValidationFailed, "至少需要一个收件人")
	}
	if missing, err := n.repos.User.MissingIds(req.ToUserIds); err != nil {
		zap.L().Error("check recipient users error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	} else if len(missing) > 0 {
		return nil, errorx.Newf(errorx.CodeUserNotFound, "收件用户 %d 不存在", missing[0])
	}
	if missing, err := n.repos.Manager.MissingIds(req.ToManagerIds); err != nil {
		zap.L().Error("check recipient managers error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	} else if len(missing) > 0 {
		return nil, errorx.Newf(errorx.CodeManagerNotFound, "收件客服 %d 不存在", missing[0])
	}

	senderKind, senderUserId, senderManagerId, err := n.resolveSender(req)
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		SourceId:        req.SourceId,
		ActionId:        req.ActionId,
		SenderKind:      senderKind,
		SenderUserId:    senderUserId,
		SenderManagerId: senderManagerId,
		Title:           req.Title,
		Message:         req.Message,
		CreatedAt:       time.Now().UTC(),
	}
	if req.GroupId != nil {
		notification.GroupId = sql.NullInt64{Int64: *req.GroupId, Valid: true}
	}

	// 校验全部通过，事务内写入通知与收件人，任一失败整体回滚
	err = n.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Notification.Create(notification); err != nil {
			return err
		}
		recipients := make([]model.NotificationRecipient, 0, len(req.ToUserIds)+len(req.ToManagerIds))
		for _, userId := range req.ToUserIds {
			recipients = append(recipients, model.NotificationRecipient{
				NotificationId: notification.Id,
				UserId:         sql.NullInt64{Int64: userId, Valid: true},
			})
		}
		for _, managerId := range req.ToManagerIds {
			recipients = append(recipients, model.NotificationRecipient{
				NotificationId: notification.Id,
				ManagerId:      sql.NullInt64{Int64: managerId, Valid: true},
			})
		}
		return txRepos.Notification.CreateRecipients(recipients)
	})
	if err != nil {
		zap.L().Error("create notification error", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeDBError, "创建通知失败")
	}

	return &respond.CreateNotificationRespond{NotificationId: notification.Id}, nil
}

// checkLookup 校验字典表引用
func (n *notificationService) checkLookup(exists func(int64) (bool, error), id int64, name string) error {
	ok, err := exists(id)
	if err != nil {
		zap.L().Error("check lookup error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if !ok {
		return errorx.Newf(errorx.CodeValidationFailed, "%s %d 不存在", name, id)
	}
	return nil
}

// resolveSender 在写入时显式判定发送方身份
// 用户与客服至多填一个，都为空按系统通知处理
func (n *notificationService) resolveSender(req request.CreateNotificationRequest) (int8, sql.NullInt64, sql.NullInt64, error) {
	if req.SenderUserId != nil && req.SenderManagerId != nil {
		return 0, sql.NullInt64{}, sql.NullInt64{},
			errorx.New(errorx.CodeValidationFailed, "发送方不能同时为用户和客服")
	}
	if req.SenderUserId != nil {
		exists, err := n.repos.User.ExistsById(*req.SenderUserId)
		if err != nil {
			zap.L().Error("check sender user error", zap.Error(err))
			return 0, sql.NullInt64{}, sql.NullInt64{}, errorx.ErrServerBusy
		}
		if !exists {
			return 0, sql.NullInt64{}, sql.NullInt64{},
				errorx.Newf(errorx.CodeUserNotFound, "发送用户 %d 不存在", *req.SenderUserId)
		}
		return sender_kind_enum.User, sql.NullInt64{Int64: *req.SenderUserId, Valid: true}, sql.NullInt64{}, nil
	}
	if req.SenderManagerId != nil {
		exists, err := n.repos.Manager.ExistsById(*req.SenderManagerId)
		if err != nil {
			zap.L().Error("check sender manager error", zap.Error(err))
			return 0, sql.NullInt64{}, sql.NullInt64{}, errorx.ErrServerBusy
		}
		if !exists {
			return 0, sql.NullInt64{}, sql.NullInt64{},
				errorx.Newf(errorx.CodeManagerNotFound, "发送客服 %d 不存在", *req.SenderManagerId)
		}
		return sender_kind_enum.Manager, sql.NullInt64{}, sql.NullInt64{Int64: *req.SenderManagerId, Valid: true}, nil
	}
	return sender_kind_enum.System, sql.NullInt64{}, sql.NullInt64{}, nil
}
