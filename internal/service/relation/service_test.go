package relation

import (
	"testing"

	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/model"
	"mall_social_server/pkg/enum/relation/relation_action_enum"
	"mall_social_server/pkg/enum/relation/relation_status_enum"
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

// fakeRelationRepo 内存关系表
type fakeRelationRepo struct {
	rows   map[[2]int64]*model.Relation
	nextId int64
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{rows: make(map[[2]int64]*model.Relation), nextId: 1}
}

func (f *fakeRelationRepo) FindByPair(lowId, highId int64) (*model.Relation, error) {
	if row, ok := f.rows[[2]int64{lowId, highId}]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "关系不存在")
}

func (f *fakeRelationRepo) Create(relation *model.Relation) error {
	relation.Id = f.nextId
	f.nextId++
	copied := *relation
	f.rows[[2]int64{relation.UserLowId, relation.UserHighId}] = &copied
	return nil
}

func (f *fakeRelationRepo) Save(relation *model.Relation) error {
	copied := *relation
	f.rows[[2]int64{relation.UserLowId, relation.UserHighId}] = &copied
	return nil
}

func newTestService(userIds ...int64) (*relationService, *fakeRelationRepo) {
	users := &fakeUserRepo{ids: make(map[int64]bool)}
	for _, id := range userIds {
		users.ids[id] = true
	}
	relations := newFakeRelationRepo()
	repos := repository.NewTestRepositories(func(r *repository.Repositories) {
		r.User = users
		r.Relation = relations
	})
	return NewRelationService(repos), relations
}

func act(t *testing.T, svc *relationService, actorId, targetId int64, action string) *model.Relation {
	t.Helper()
	if _, err := svc.Act(actorId, request.RelationActionRequest{TargetId: targetId, Action: action}); err != nil {
		t.Fatalf("动作 %s 失败: %v", action, err)
	}
	low, high := actorId, targetId
	if low > high {
		low, high = high, low
	}
	row, err := svc.repos.Relation.FindByPair(low, high)
	if err != nil {
		t.Fatalf("查询关系失败: %v", err)
	}
	return row
}

func TestFriendLifecycle(t *testing.T) {
	svc, _ := newTestService(3, 7)

	// 初始无关系
	rsp, err := svc.Get(3, 7)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if rsp.Status != relation_status_enum.NONE {
		t.Fatalf("初始状态应为 NONE，实际 %d", rsp.Status)
	}

	// 3 发起申请
	row := act(t, svc, 3, 7, relation_action_enum.FriendRequest)
	if row.Status != relation_status_enum.PENDING {
		t.Fatalf("申请后应为 PENDING，实际 %d", row.Status)
	}
	if !row.RequestedBy.Valid || row.RequestedBy.Int64 != 3 {
		t.Fatalf("requested_by 应为 3")
	}

	// 7 通过申请
	row = act(t, svc, 7, 3, relation_action_enum.Accept)
	if row.Status != relation_status_enum.ACCEPTED {
		t.Fatalf("通过后应为 ACCEPTED，实际 %d", row.Status)
	}
	if row.RequestedBy.Valid {
		t.Fatalf("通过后 requested_by 应清空")
	}

	// 3 解除好友
	row = act(t, svc, 3, 7, relation_action_enum.Unfriend)
	if row.Status != relation_status_enum.NONE {
		t.Fatalf("解除后应为 NONE，实际 %d", row.Status)
	}
}

func TestNormalizationSymmetry(t *testing.T) {
	svc, relations := newTestService(9, 2)

	act(t, svc, 9, 2, relation_action_enum.FriendRequest)
	if len(relations.rows) != 1 {
		t.Fatalf("应只有一行关系，实际 %d", len(relations.rows))
	}
	if _, ok := relations.rows[[2]int64{2, 9}]; !ok {
		t.Fatalf("关系行应按 (2,9) 归一化存储")
	}

	// 两个方向查询同一行
	a, err := svc.Get(9, 2)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	b, err := svc.Get(2, 9)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if a.Status != b.Status {
		t.Fatalf("两个方向查询结果应一致")
	}
}

func TestBlockIdempotent(t *testing.T) {
	svc, _ := newTestService(1, 2)

	first, err := svc.Act(1, request.RelationActionRequest{TargetId: 2, Action: relation_action_enum.Block})
	if err != nil {
		t.Fatalf("拉黑失败: %v", err)
	}
	if first.NoOp {
		t.Fatalf("首次拉黑不应为 NoOp")
	}

	second, err := svc.Act(1, request.RelationActionRequest{TargetId: 2, Action: relation_action_enum.Block})
	if err != nil {
		t.Fatalf("重复拉黑应成功: %v", err)
	}
	if !second.NoOp {
		t.Fatalf("重复拉黑应为 NoOp")
	}
	if second.Status != relation_status_enum.BLOCKED {
		t.Fatalf("状态应保持 BLOCKED")
	}
}

func TestRepeatedFriendRequestIsNoOp(t *testing.T) {
	svc, _ := newTestService(1, 2)

	act(t, svc, 1, 2, relation_action_enum.FriendRequest)
	rsp, err := svc.Act(1, request.RelationActionRequest{TargetId: 2, Action: relation_action_enum.FriendRequest})
	if err != nil {
		t.Fatalf("重复申请应成功: %v", err)
	}
	if !rsp.NoOp {
		t.Fatalf("重复申请应为 NoOp")
	}
}

func TestRequesterCannotAcceptOwnRequest(t *testing.T) {
	svc, _ := newTestService(1, 2)

	act(t, svc, 1, 2, relation_action_enum.FriendRequest)
	if _, err := svc.Act(1, request.RelationActionRequest{TargetId: 2, Action: relation_action_enum.Accept}); err == nil {
		t.Fatalf("发起方不能通过自己的申请")
	} else if errorx.GetCode(err) != errorx.CodeInvalidTransition {
		t.Fatalf("应返回非法流转错误码，实际 %d", errorx.GetCode(err))
	}
}

func TestOnlyRequesterCanCancel(t *testing.T) {
	svc, _ := newTestService(1, 2)

	act(t, svc, 1, 2, relation_action_enum.FriendRequest)
	if _, err := svc.Act(2, request.RelationActionRequest{TargetId: 1, Action: relation_action_enum.CancelRequest}); err == nil {
		t.Fatalf("非发起方不能撤回申请")
	}
	row := act(t, svc, 1, 2, relation_action_enum.CancelRequest)
	if row.Status != relation_status_enum.REMOVED {
		t.Fatalf("撤回后应为 REMOVED，实际 %d", row.Status)
	}
}

func TestBlockedRejectsFriendRequest(t *testing.T) {
	svc, _ := newTestService(1, 2)

	act(t, svc, 1, 2, relation_action_enum.Block)
	if _, err := svc.Act(2, request.RelationActionRequest{TargetId: 1, Action: relation_action_enum.FriendRequest}); err == nil {
		t.Fatalf("拉黑状态不应允许发起申请")
	}
}

func TestUnblockOnlyFromBlocked(t *testing.T) {
	svc, _ := newTestService(1, 2)

	if _, err := svc.Act(1, request.RelationActionRequest{TargetId: 2, Action: relation_action_enum.Unblock}); err == nil {
		t.Fatalf("非拉黑状态不应允许取消拉黑")
	}
	act(t, svc, 1, 2, relation_action_enum.Block)
	row := act(t, svc, 1, 2, relation_action_enum.Unblock)
	if row.Status != relation_status_enum.NONE {
		t.Fatalf("取消拉黑后应为 NONE，实际 %d", row.Status)
	}
}

// TestInvalidTransitionMatrix 全量状态×动作矩阵
// 流转表未登记的组合必须报错，登记过的必须成功
func TestInvalidTransitionMatrix(t *testing.T) {
	type seed func(t *testing.T, svc *relationService)
	states := []struct {
		name   string
		status int8
		seed   seed // 把 (1,2) 关系推进到目标状态，动作方视角为用户 1
	}{
		{"NONE", relation_status_enum.NONE, func(t *testing.T, svc *relationService) {}},
		{"PENDING_own", relation_status_enum.PENDING, func(t *testing.T, svc *relationService) {
			act(t, svc, 1, 2, relation_action_enum.FriendRequest)
		}},
		{"PENDING_other", relation_status_enum.PENDING, func(t *testing.T, svc *relationService) {
			act(t, svc, 2, 1, relation_action_enum.FriendRequest)
		}},
		{"ACCEPTED", relation_status_enum.ACCEPTED, func(t *testing.T, svc *relationService) {
			act(t, svc, 1, 2, relation_action_enum.FriendRequest)
			act(t, svc, 2, 1, relation_action_enum.Accept)
		}},
		{"BLOCKED", relation_status_enum.BLOCKED, func(t *testing.T, svc *relationService) {
			act(t, svc, 1, 2, relation_action_enum.Block)
		}},
		{"REMOVED", relation_status_enum.REMOVED, func(t *testing.T, svc *relationService) {
			act(t, svc, 1, 2, relation_action_enum.FriendRequest)
			act(t, svc, 1, 2, relation_action_enum.CancelRequest)
		}},
		{"REJECTED", relation_status_enum.REJECTED, func(t *testing.T, svc *relationService) {
			act(t, svc, 1, 2, relation_action_enum.FriendRequest)
			act(t, svc, 2, 1, relation_action_enum.Reject)
		}},
	}
	actions := []string{
		relation_action_enum.FriendRequest,
		relation_action_enum.Accept,
		relation_action_enum.Reject,
		relation_action_enum.CancelRequest,
		relation_action_enum.Block,
		relation_action_enum.Unblock,
		relation_action_enum.Unfriend,
		relation_action_enum.SetNickname,
	}

	// 用户 1 视角下允许成功的组合
	allowed := map[string]map[string]bool{
		"NONE":          {relation_action_enum.FriendRequest: true, relation_action_enum.Block: true},
		"PENDING_own":   {relation_action_enum.FriendRequest: true, relation_action_enum.CancelRequest: true, relation_action_enum.Block: true},
		"PENDING_other": {relation_action_enum.Accept: true, relation_action_enum.Reject: true, relation_action_enum.Block: true},
		"ACCEPTED":      {relation_action_enum.Unfriend: true, relation_action_enum.SetNickname: true, relation_action_enum.Block: true},
		"BLOCKED":       {relation_action_enum.Unblock: true, relation_action_enum.Block: true},
		"REMOVED":       {relation_action_enum.FriendRequest: true, relation_action_enum.Block: true},
		"REJECTED":      {relation_action_enum.FriendRequest: true, relation_action_enum.Block: true},
	}

	for _, state := range states {
		for _, action := range actions {
			t.Run(state.name+"/"+action, func(t *testing.T) {
				svc, _ := newTestService(1, 2)
				state.seed(t, svc)
				_, err := svc.Act(1, request.RelationActionRequest{
					TargetId: 2, Action: action, Nickname: "备注",
				})
				if allowed[state.name][action] {
					if err != nil {
						t.Fatalf("组合 %s/%s 应成功: %v", state.name, action, err)
					}
				} else if err == nil {
					t.Fatalf("组合 %s/%s 应报错", state.name, action)
				}
			})
		}
	}
}

func TestSetNickname(t *testing.T) {
	svc, _ := newTestService(1, 2)

	act(t, svc, 1, 2, relation_action_enum.FriendRequest)
	act(t, svc, 2, 1, relation_action_enum.Accept)

	rsp, err := svc.Act(1, request.RelationActionRequest{
		TargetId: 2, Action: relation_action_enum.SetNickname, Nickname: "老王",
	})
	if err != nil {
		t.Fatalf("设置备注失败: %v", err)
	}
	if rsp.Nickname != "老王" || rsp.NoOp {
		t.Fatalf("备注应生效且非 NoOp")
	}

	// 未变化为 NoOp
	rsp, err = svc.Act(1, request.RelationActionRequest{
		TargetId: 2, Action: relation_action_enum.SetNickname, Nickname: "老王",
	})
	if err != nil {
		t.Fatalf("重复设置应成功: %v", err)
	}
	if !rsp.NoOp {
		t.Fatalf("备注未变化应为 NoOp")
	}
}

func TestPairValidation(t *testing.T) {
	svc, _ := newTestService(1, 2)

	cases := []struct {
		name     string
		actorId  int64
		targetId int64
		wantCode int
	}{
		{"未登录", 0, 2, errorx.CodeNotLoggedIn},
		{"指向自己", 1, 1, errorx.CodeNoPeer},
		{"目标缺失", 1, 0, errorx.CodeNoPeer},
		{"目标不存在", 1, 99, errorx.CodeUserNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Act(tc.actorId, request.RelationActionRequest{
				TargetId: tc.targetId, Action: relation_action_enum.FriendRequest,
			})
			if err == nil {
				t.Fatalf("应报错")
			}
			if errorx.GetCode(err) != tc.wantCode {
				t.Fatalf("错误码应为 %d，实际 %d", tc.wantCode, errorx.GetCode(err))
			}
		})
	}
}
