package notification

import (
	"strings"
	"testing"

	"mall_social_server/internal/config"
	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/model"
	"mall_social_server/pkg/enum/notification/sender_kind_enum"
	"mall_social_server/pkg/errorx"
)

// fakeUserRepo 内存用户表
type fakeUserRepo struct {
	ids map[int64]bool
}

func (f *fakeUserRepo) FindById(id int64) (*model.UserInfo, error) {
	if f.ids[id] {
		return &model.UserInfo{Id: id}, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (f *fakeUserRepo) ExistsById(id int64) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeUserRepo) MissingIds(ids []int64) ([]int64, error) {
	var missing []int64
	for _, id := range ids {
		if !f.ids[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// fakeManagerRepo 内存客服表
type fakeManagerRepo struct {
	ids map[int64]bool
}

func (f *fakeManagerRepo) FindById(id int64) (*model.ManagerInfo, error) {
	if f.ids[id] {
		return &model.ManagerInfo{Id: id}, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "客服不存在")
}

func (f *fakeManagerRepo) ExistsById(id int64) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeManagerRepo) MissingIds(ids []int64) ([]int64, error) {
	var missing []int64
	for _, id := range ids {
		if !f.ids[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// fakeNotificationRepo 内存通知表，记录全部写入以断言零写入
type fakeNotificationRepo struct {
	sources    map[int64]bool
	actions    map[int64]bool
	groups     map[int64]bool
	created    []*model.Notification
	recipients []model.NotificationRecipient
	nextId     int64
}

func (f *fakeNotificationRepo) SourceExists(id int64) (bool, error) { return f.sources[id], nil }
func (f *fakeNotificationRepo) ActionExists(id int64) (bool, error) { return f.actions[id], nil }
func (f *fakeNotificationRepo) GroupExists(id int64) (bool, error)  { return f.groups[id], nil }

func (f *fakeNotificationRepo) Create(notification *model.Notification) error {
	f.nextId++
	notification.Id = f.nextId
	copied := *notification
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakeNotificationRepo) CreateRecipients(recipients []model.NotificationRecipient) error {
	f.recipients = append(f.recipients, recipients...)
	return nil
}

func newTestService() (*notificationService, *fakeNotificationRepo) {
	notifications := &fakeNotificationRepo{
		sources: map[int64]bool{1: true},
		actions: map[int64]bool{2: true},
		groups:  map[int64]bool{3: true},
	}
	repos := repository.NewTestRepositories(func(r *repository.Repositories) {
		r.User = &fakeUserRepo{ids: map[int64]bool{10: true, 11: true}}
		r.Manager = &fakeManagerRepo{ids: map[int64]bool{20: true}}
		r.Notification = notifications
	})
	return NewNotificationService(repos), notifications
}

func validRequest() request.CreateNotificationRequest {
	return request.CreateNotificationRequest{
		SourceId:  1,
		ActionId:  2,
		Title:     "您的订单已发货",
		Message:   "快递单号 SF123456",
		ToUserIds: []int64{10, 11},
	}
}

func TestCreateNotification(t *testing.T) {
	svc, notifications := newTestService()

	groupId := int64(3)
	managerId := int64(20)
	req := validRequest()
	req.GroupId = &groupId
	req.SenderManagerId = &managerId
	req.ToManagerIds = []int64{20}

	rsp, err := svc.Create(req)
	if err != nil {
		t.Fatalf("创建通知失败: %v", err)
	}
	if rsp.NotificationId == 0 {
		t.Fatalf("应返回通知 id")
	}

	if len(notifications.created) != 1 {
		t.Fatalf("应写入 1 条通知")
	}
	created := notifications.created[0]
	if created.SenderKind != sender_kind_enum.Manager {
		t.Fatalf("发送方身份应为客服，实际 %d", created.SenderKind)
	}
	if !created.SenderManagerId.Valid || created.SenderManagerId.Int64 != 20 {
		t.Fatalf("发送客服应为 20")
	}
	if !created.GroupId.Valid || created.GroupId.Int64 != 3 {
		t.Fatalf("分组应为 3")
	}

	// 每个收件人一行，user_id 与 manager_id 恰有一个非空
	if len(notifications.recipients) != 3 {
		t.Fatalf("应写入 3 行收件人，实际 %d", len(notifications.recipients))
	}
	for _, recipient := range notifications.recipients {
		if recipient.NotificationId != rsp.NotificationId {
			t.Fatalf("收件行应挂在新通知下")
		}
		if recipient.UserId.Valid == recipient.ManagerId.Valid {
			t.Fatalf("收件行应恰有一个身份字段非空: %+v", recipient)
		}
	}
}

func TestSenderKindResolution(t *testing.T) {
	userId := int64(10)
	managerId := int64(20)

	cases := []struct {
		name            string
		senderUserId    *int64
		senderManagerId *int64
		wantKind        int8
	}{
		{"系统通知", nil, nil, sender_kind_enum.System},
		{"用户发送", &userId, nil, sender_kind_enum.User},
		{"客服发送", nil, &managerId, sender_kind_enum.Manager},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, notifications := newTestService()
			req := validRequest()
			req.SenderUserId = tc.senderUserId
			req.SenderManagerId = tc.senderManagerId
			if _, err := svc.Create(req); err != nil {
				t.Fatalf("创建失败: %v", err)
			}
			if got := notifications.created[0].SenderKind; got != tc.wantKind {
				t.Fatalf("发送方身份应为 %d，实际 %d", tc.wantKind, got)
			}
		})
	}

	// 用户与客服同时给出
	svc, notifications := newTestService()
	req := validRequest()
	req.SenderUserId = &userId
	req.SenderManagerId = &managerId
	if _, err := svc.Create(req); errorx.GetCode(err) != errorx.CodeValidationFailed {
		t.Fatalf("双重发送方应报校验失败，实际 %v", err)
	}
	if len(notifications.created) != 0 {
		t.Fatalf("校验失败不应有任何写入")
	}
}

func TestValidationFailFast(t *testing.T) {
	conf := config.GetConfig().NotificationConfig
	badSender := int64(99)

	cases := []struct {
		name     string
		mutate   func(req *request.CreateNotificationRequest)
		wantCode int
	}{
		{"标题过长", func(req *request.CreateNotificationRequest) {
			req.Title = strings.Repeat("长", conf.TitleMaxLength+1)
		}, errorx.CodeTitleTooLong},
		{"正文过长", func(req *request.CreateNotificationRequest) {
			req.Message = strings.Repeat("长", conf.MessageMaxLength+1)
		}, errorx.CodeMessageTooLong},
		{"来源不存在", func(req *request.CreateNotificationRequest) {
			req.SourceId = 99
		}, errorx.CodeValidationFailed},
		{"动作不存在", func(req *request.CreateNotificationRequest) {
			req.ActionId = 99
		}, errorx.CodeValidationFailed},
		{"分组不存在", func(req *request.CreateNotificationRequest) {
			groupId := int64(99)
			req.GroupId = &groupId
		}, errorx.CodeValidationFailed},
		{"没有收件人", func(req *request.CreateNotificationRequest) {
			req.ToUserIds = nil
		}, errorx.CodeValidationFailed},
		{"收件用户不存在", func(req *request.CreateNotificationRequest) {
			req.ToUserIds = []int64{10, 99}
		}, errorx.CodeUserNotFound},
		{"收件客服不存在", func(req *request.CreateNotificationRequest) {
			req.ToManagerIds = []int64{99}
		}, errorx.CodeManagerNotFound},
		{"发送用户不存在", func(req *request.CreateNotificationRequest) {
			req.SenderUserId = &badSender
		}, errorx.CodeUserNotFound},
		{"发送客服不存在", func(req *request.CreateNotificationRequest) {
			req.SenderManagerId = &badSender
		}, errorx.CodeManagerNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, notifications := newTestService()
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(req)
			if err == nil {
				t.Fatalf("应报错")
			}
			if errorx.GetCode(err) != tc.wantCode {
				t.Fatalf("错误码应为 %d，实际 %d", tc.wantCode, errorx.GetCode(err))
			}
			// fail-fast：任何校验失败都不产生写入
			if len(notifications.created) != 0 || len(notifications.recipients) != 0 {
				t.Fatalf("校验失败不应有任何写入")
			}
		})
	}
}

func TestTitleLengthCountsRunes(t *testing.T) {
	svc, _ := newTestService()

	conf := config.GetConfig().NotificationConfig
	req := validRequest()
	// 恰好达到上限的多字节标题应通过
	req.Title = strings.Repeat("题", conf.TitleMaxLength)
	if _, err := svc.Create(req); err != nil {
		t.Fatalf("达到上限的标题应通过: %v", err)
	}
}
