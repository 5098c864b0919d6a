// Package relation 实现好友关系状态机
// 每对用户一行归一化记录，(当前状态, 动作) 查显式流转表决定下一状态，
// 不改变可见状态的重复动作返回 NoOp 成功，未列出的组合一律报错
package relation

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"mall_social_server/internal/config"
	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/dto/respond"
	"mall_social_server/internal/model"
	"mall_social_server/pkg/enum/relation/relation_action_enum"
	"mall_social_server/pkg/enum/relation/relation_status_enum"
	"mall_social_server/pkg/errorx"
)

// relationService 好友关系业务逻辑实现
type relationService struct {
	repos *repository.Repositories
}

// NewRelationService 构造函数
func NewRelationService(repos *repository.Repositories) *relationService {
	return &relationService{repos: repos}
}

// transitionKey 流转表的键
// requesterRole 仅对 PENDING 状态有意义：动作方是否为申请发起方
type transitionKey struct {
	status        int8
	action        string
	actorIsOrigin bool
}

// transition 一次状态流转的结果
type transition struct {
	next      int8
	noOp      bool
	setOrigin bool // 置 requested_by = 动作方
}

// transitions 显式流转表
// PENDING 之外的状态不区分 actorIsOrigin，查表时两种取值各登记一行
var transitions = map[transitionKey]transition{}

func init() {
	// 无论动作方身份，效果相同的流转登记两行
	both := func(status int8, action string, t transition) {
		transitions[transitionKey{status, action, true}] = t
		transitions[transitionKey{status, action, false}] = t
	}

	// friend_request：空白状态均可发起申请
	for _, status := range []int8{relation_status_enum.NONE, relation_status_enum.REJECTED, relation_status_enum.REMOVED} {
		both(status, relation_action_enum.FriendRequest,
			transition{next: relation_status_enum.PENDING, setOrigin: true})
	}
	// 自己重复申请幂等；对方已申请须走 accept（见 applyPolicy 的互发自动通过）
	transitions[transitionKey{relation_status_enum.PENDING, relation_action_enum.FriendRequest, true}] =
		transition{next: relation_status_enum.PENDING, noOp: true, setOrigin: true}

	// accept / reject：只有非发起方可以处理申请
	transitions[transitionKey{relation_status_enum.PENDING, relation_action_enum.Accept, false}] =
		transition{next: relation_status_enum.ACCEPTED}
	transitions[transitionKey{relation_status_enum.PENDING, relation_action_enum.Reject, false}] =
		transition{next: relation_status_enum.REJECTED}

	// cancel_request：只有发起方可以撤回
	transitions[transitionKey{relation_status_enum.PENDING, relation_action_enum.CancelRequest, true}] =
		transition{next: relation_status_enum.REMOVED}

	// block：任意状态可拉黑，重复拉黑幂等
	for _, status := range []int8{
		relation_status_enum.NONE, relation_status_enum.PENDING, relation_status_enum.ACCEPTED,
		relation_status_enum.REMOVED, relation_status_enum.REJECTED,
	} {
		both(status, relation_action_enum.Block, transition{next: relation_status_enum.BLOCKED})
	}
	both(relation_status_enum.BLOCKED, relation_action_enum.Block,
		transition{next: relation_status_enum.BLOCKED, noOp: true})

	// unblock / unfriend：仅从对应状态回到 NONE
	both(relation_status_enum.BLOCKED, relation_action_enum.Unblock,
		transition{next: relation_status_enum.NONE})
	both(relation_status_enum.ACCEPTED, relation_action_enum.Unfriend,
		transition{next: relation_status_enum.NONE})

	// set_nickname：仅好友状态可设置备注，状态不变
	both(relation_status_enum.ACCEPTED, relation_action_enum.SetNickname,
		transition{next: relation_status_enum.ACCEPTED})
}

// validatePair 校验动作方与目标
func (s *relationService) validatePair(actorId, targetId int64) error {
	if actorId <= 0 {
		return errorx.ErrNotLoggedIn
	}
	if targetId <= 0 || targetId == actorId {
		return errorx.ErrNoPeer
	}
	for _, id := range []int64{actorId, targetId} {
		exists, err := s.repos.User.ExistsById(id)
		if err != nil {
			zap.L().Error("check user exists error", zap.Error(err))
			return errorx.ErrServerBusy
		}
		if !exists {
			return errorx.Newf(errorx.CodeUserNotFound, "用户 %d 不存在", id)
		}
	}
	return nil
}

// loadOrBlank 加载关系行，缺失时返回未落库的 NONE 行
func (s *relationService) loadOrBlank(lowId, highId int64) (*model.Relation, bool, error) {
	relation, err := s.repos.Relation.FindByPair(lowId, highId)
	if err == nil {
		return relation, true, nil
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error("find relation error", zap.Error(err))
		return nil, false, errorx.ErrServerBusy
	}
	return &model.Relation{
		UserLowId:  lowId,
		UserHighId: highId,
		Status:     relation_status_enum.NONE,
	}, false, nil
}

// Act 对目标用户执行一个关系动作
func (s *relationService) Act(actorId int64, req request.RelationActionRequest) (*respond.RelationRespond, error) {
	if err := s.validatePair(actorId, req.TargetId); err != nil {
		return nil, err
	}

	lowId, highId := actorId, req.TargetId
	if lowId > highId {
		lowId, highId = highId, lowId
	}
	relation, persisted, err := s.loadOrBlank(lowId, highId)
	if err != nil {
		return nil, err
	}

	actorIsOrigin := relation.RequestedBy.Valid && relation.RequestedBy.Int64 == actorId
	key := transitionKey{relation.Status, req.Action, actorIsOrigin}
	result, ok := transitions[key]
	if !ok {
		if policyResult, handled := s.applyPolicy(relation, req.Action, actorIsOrigin); handled {
			result = policyResult
		} else {
			return nil, errorx.Newf(errorx.CodeInvalidTransition,
				"当前状态 %d 不允许动作 %s", relation.Status, req.Action)
		}
	}

	if req.Action == relation_action_enum.SetNickname {
		return s.setNickname(relation, req.Nickname)
	}

	if result.noOp {
		return s.respond(relation, true), nil
	}

	relation.Status = result.next
	if result.setOrigin {
		relation.RequestedBy = sql.NullInt64{Int64: actorId, Valid: true}
	} else {
		// 离开 PENDING 的流转一律清空发起方
		relation.RequestedBy = sql.NullInt64{}
	}
	if result.next != relation_status_enum.ACCEPTED {
		relation.FriendNickname = sql.NullString{}
	}

	if err := s.save(relation, persisted); err != nil {
		return nil, err
	}
	return s.respond(relation, false), nil
}

// applyPolicy 表外的策略性流转
// 互发申请自动通过：对方已发起申请时我再申请，若策略开启则直接成为好友
func (s *relationService) applyPolicy(relation *model.Relation, action string, actorIsOrigin bool) (transition, bool) {
	if relation.Status == relation_status_enum.PENDING &&
		action == relation_action_enum.FriendRequest && !actorIsOrigin &&
		config.GetConfig().RelationConfig.AutoAcceptMutual {
		return transition{next: relation_status_enum.ACCEPTED}, true
	}
	return transition{}, false
}

// setNickname 设置好友备注，未变化返回 NoOp
func (s *relationService) setNickname(relation *model.Relation, nickname string) (*respond.RelationRespond, error) {
	maxLength := config.GetConfig().RelationConfig.NicknameMaxLength
	if runes := []rune(nickname); len(runes) > maxLength {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "备注最长 %d 个字符", maxLength)
	}
	if relation.FriendNickname.Valid && relation.FriendNickname.String == nickname {
		return s.respond(relation, true), nil
	}
	relation.FriendNickname = sql.NullString{String: nickname, Valid: nickname != ""}
	if err := s.save(relation, true); err != nil {
		return nil, err
	}
	return s.respond(relation, false), nil
}

// Get 查询与目标用户的关系，无记录视为 NONE
func (s *relationService) Get(actorId, targetId int64) (*respond.RelationRespond, error) {
	if err := s.validatePair(actorId, targetId); err != nil {
		return nil, err
	}
	lowId, highId := actorId, targetId
	if lowId > highId {
		lowId, highId = highId, lowId
	}
	relation, _, err := s.loadOrBlank(lowId, highId)
	if err != nil {
		return nil, err
	}
	return s.respond(relation, false), nil
}

// save 落库：新行创建，旧行整行保存
func (s *relationService) save(relation *model.Relation, persisted bool) error {
	relation.UpdatedAt = time.Now().UTC()
	var err error
	if persisted {
		err = s.repos.Relation.Save(relation)
	} else {
		relation.CreatedAt = relation.UpdatedAt
		err = s.repos.Relation.Create(relation)
	}
	if err != nil {
		zap.L().Error("save relation error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// respond 组装返回体
func (s *relationService) respond(relation *model.Relation, noOp bool) *respond.RelationRespond {
	rsp := &respond.RelationRespond{
		Status: relation.Status,
		NoOp:   noOp,
	}
	if relation.RequestedBy.Valid {
		requestedBy := relation.RequestedBy.Int64
		rsp.RequestedBy = &requestedBy
	}
	if relation.FriendNickname.Valid {
		rsp.Nickname = relation.FriendNickname.String
	}
	return rsp
}
