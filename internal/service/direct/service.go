// Package direct 实现私信业务逻辑
// 发送、已读回执、历史查询与未读统计都走归一化的用户对会话，
// 推送事件经广播中心同时投递给双方的用户频道，多端保持同步
package direct

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mall_social_server/internal/config"
	"mall_social_server/internal/dao/mysql/repository"
	myredis "mall_social_server/internal/dao/redis"
	"mall_social_server/internal/dto/respond"
	"mall_social_server/internal/model"
	"mall_social_server/internal/service/hub"
	"mall_social_server/pkg/constants"
	"mall_social_server/pkg/errorx"
	"mall_social_server/pkg/util/snowflake"
)

// Broadcaster 事件广播接口，由 hub.Hub 实现
type Broadcaster interface {
	Publish(ctx context.Context, channel, event string, data any) error
}

// Censorer 文本过滤接口，由 filter 服务实现
// 原文入库，遮蔽只发生在组装下行载荷时
type Censorer interface {
	Censor(text string) string
}

// directService 私信业务逻辑实现
type directService struct {
	repos       *repository.Repositories
	broadcaster Broadcaster
	censorer    Censorer
	cache       myredis.AsyncCacheService
}

// NewDirectService 构造函数
// cache 为 nil 时跳过历史缓存（测试路径）
func NewDirectService(repos *repository.Repositories, broadcaster Broadcaster, censorer Censorer, cache myredis.AsyncCacheService) *directService {
	return &directService{
		repos:       repos,
		broadcaster: broadcaster,
		censorer:    censorer,
		cache:       cache,
	}
}

// normalizePair 归一化用户对，小 id 在前
func normalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// validatePair 校验操作方与对端
// 操作方 id 非法视为未登录，对端缺失或指向自己视为无对端，两者都必须真实存在
func (d *directService) validatePair(actorId, peerId int64) error {
	if actorId <= 0 {
		return errorx.ErrNotLoggedIn
	}
	if peerId <= 0 || peerId == actorId {
		return errorx.ErrNoPeer
	}
	for _, id := range []int64{actorId, peerId} {
		exists, err := d.repos.User.ExistsById(id)
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

// findOrCreateConversation 查找或懒创建归一化会话
func (d *directService) findOrCreateConversation(lowId, highId int64) (*model.Conversation, error) {
	conversation, err := d.repos.Conversation.FindByPair(lowId, highId, false)
	if err == nil {
		return conversation, nil
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error("find conversation error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	conversation = &model.Conversation{
		PartyLowId:  lowId,
		PartyHighId: highId,
		CreatedAt:   time.Now().UTC(),
	}
	if err := d.repos.Conversation.Create(conversation); err != nil {
		zap.L().Error("create conversation error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return conversation, nil
}

// isoUTC 渲染 UTC ISO-8601 时间（以 Z 结尾）
// 存储读出的时间一律先归一化为 UTC 再渲染
func isoUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// historyCacheKey 最近一页历史的缓存 key
func historyCacheKey(conversationId int64) string {
	return "direct_history_" + strconv.FormatInt(conversationId, 10)
}

// SendDirect 发送私信
// 内容去除首尾空白后不得为空，超长静默截断；载荷中的内容经过敏感词遮蔽
func (d *directService) SendDirect(ctx context.Context, senderId, receiverId int64, content string) (*respond.DirectMessagePayload, error) {
	if err := d.validatePair(senderId, receiverId); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errorx.ErrBadText
	}
	maxLength := config.GetConfig().MessageConfig.MaxLength
	if runes := []rune(content); len(runes) > maxLength {
		content = string(runes[:maxLength])
	}

	lowId, highId := normalizePair(senderId, receiverId)
	conversation, err := d.findOrCreateConversation(lowId, highId)
	if err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		Id:               snowflake.GenerateID(),
		ConversationId:   conversation.Id,
		SenderIsPartyLow: conversation.PartyIsLow(senderId),
		Content:          content,
		SentAt:           time.Now().UTC(),
	}
	if err := d.repos.Message.Create(message); err != nil {
		zap.L().Error("create message error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	payload := &respond.DirectMessagePayload{
		MessageId:  message.Id,
		SenderId:   senderId,
		ReceiverId: receiverId,
		Content:    d.censorer.Censor(content),
		SentAtIso:  isoUTC(message.SentAt),
	}

	// 写入已提交，推给双方的用户频道，多端同步
	d.publish(ctx, hub.UserChannel(senderId), hub.EventReceiveDirect, payload)
	d.publish(ctx, hub.UserChannel(receiverId), hub.EventReceiveDirect, payload)
	d.pushUnread(ctx, receiverId, senderId)
	d.invalidateHistory(conversation.Id)

	return payload, nil
}

// MarkRead 把对方在 upTo 及之前发出的消息标记为已读
// upTo 回退或重复调用不会把消息改回未读
func (d *directService) MarkRead(ctx context.Context, readerId, otherId int64, upTo time.Time) (*respond.ReadReceiptPayload, error) {
	if err := d.validatePair(readerId, otherId); err != nil {
		return nil, err
	}

	lowId, highId := normalizePair(readerId, otherId)
	conversation, err := d.findOrCreateConversation(lowId, highId)
	if err != nil {
		return nil, err
	}

	upTo = upTo.UTC()
	affected, err := d.repos.Message.MarkReadUpTo(
		conversation.Id, conversation.PartyIsLow(otherId), upTo, time.Now().UTC())
	if err != nil {
		zap.L().Error("mark read error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	payload := &respond.ReadReceiptPayload{
		FromUserId: readerId,
		UpToIso:    isoUTC(upTo),
	}

	d.publish(ctx, hub.UserChannel(readerId), hub.EventReadReceipt, payload)
	d.publish(ctx, hub.UserChannel(otherId), hub.EventReadReceipt, payload)
	if affected > 0 {
		d.pushUnread(ctx, readerId, otherId)
	}

	return payload, nil
}

// GetHistory 查询私信历史，升序返回
// after 给定时返回严格晚于该时刻的全部消息，否则返回最近一页
func (d *directService) GetHistory(ctx context.Context, userId, otherId int64, after *time.Time, pageSize int) ([]respond.DirectMessagePayload, error) {
	if err := d.validatePair(userId, otherId); err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = config.GetConfig().MessageConfig.PageSize
	}

	lowId, highId := normalizePair(userId, otherId)
	conversation, err := d.repos.Conversation.FindByPair(lowId, highId, false)
	if err != nil {
		if errorx.IsNotFound(err) {
			return []respond.DirectMessagePayload{}, nil
		}
		zap.L().Error("find conversation error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	useCache := d.cache != nil && after == nil && pageSize == config.GetConfig().MessageConfig.PageSize
	cacheKey := historyCacheKey(conversation.Id)
	if useCache {
		if cached, cacheErr := d.cache.Get(ctx, cacheKey); cacheErr == nil && cached != "" {
			var payloads []respond.DirectMessagePayload
			if unmarshalErr := json.Unmarshal([]byte(cached), &payloads); unmarshalErr == nil {
				return d.censorPayloads(payloads), nil
			} else {
				zap.L().Error("unmarshal history cache error", zap.Error(unmarshalErr))
			}
		}
	}

	var messages []model.ChatMessage
	if after != nil {
		messages, err = d.repos.Message.FindAfter(ctx, conversation.Id, after.UTC())
	} else {
		messages, err = d.repos.Message.FindLatest(ctx, conversation.Id, pageSize)
		if err == nil {
			// 降序取回最近一页，翻转为升序
			for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
				messages[i], messages[j] = messages[j], messages[i]
			}
		}
	}
	if err != nil {
		zap.L().Error("find history error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 缓存里保留原文，遮蔽统一发生在出口，规则热更新后缓存命中也按新快照执行
	payloads := make([]respond.DirectMessagePayload, 0, len(messages))
	for _, message := range messages {
		senderId, receiverId := conversation.PartyLowId, conversation.PartyHighId
		if !message.SenderIsPartyLow {
			senderId, receiverId = receiverId, senderId
		}
		payloads = append(payloads, respond.DirectMessagePayload{
			MessageId:  message.Id,
			SenderId:   senderId,
			ReceiverId: receiverId,
			Content:    message.Content,
			SentAtIso:  isoUTC(message.SentAt),
		})
	}

	if useCache {
		d.cache.SubmitTask(func() {
			jsonBytes, err := json.Marshal(payloads)
			if err != nil {
				zap.L().Error("marshal history cache error", zap.Error(err))
				return
			}
			if err := d.cache.Set(context.Background(), cacheKey, string(jsonBytes),
				time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
				zap.L().Error("set history cache error", zap.Error(err))
			}
		})
	}

	return d.censorPayloads(payloads), nil
}

// censorPayloads 按当前快照遮蔽一批载荷
// 返回副本，异步缓存任务持有的原 slice 不被改写
func (d *directService) censorPayloads(payloads []respond.DirectMessagePayload) []respond.DirectMessagePayload {
	out := make([]respond.DirectMessagePayload, len(payloads))
	for i := range payloads {
		out[i] = payloads[i]
		out[i].Content = d.censorer.Censor(out[i].Content)
	}
	return out
}

// ComputeUnread 统计未读：全局总数与来自指定对端的数量
func (d *directService) ComputeUnread(userId, peerId int64) (*respond.UnreadRespond, error) {
	if err := d.validatePair(userId, peerId); err != nil {
		return nil, err
	}

	total, err := d.repos.Message.CountUnreadForUser(userId)
	if err != nil {
		zap.L().Error("count unread error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	var fromPeer int64
	lowId, highId := normalizePair(userId, peerId)
	conversation, err := d.repos.Conversation.FindByPair(lowId, highId, false)
	if err == nil {
		fromPeer, err = d.repos.Message.CountUnreadInConversation(
			conversation.Id, conversation.PartyIsLow(peerId))
		if err != nil {
			zap.L().Error("count unread from peer error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("find conversation error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.UnreadRespond{Total: total, FromPeer: fromPeer}, nil
}

// publish 广播事件，失败只记日志不阻断业务
func (d *directService) publish(ctx context.Context, channel, event string, data any) {
	if err := d.broadcaster.Publish(ctx, channel, event, data); err != nil {
		zap.L().Error("publish event error",
			zap.String("channel", channel), zap.String("event", event), zap.Error(err))
	}
}

// pushUnread 向用户频道推送最新未读数
func (d *directService) pushUnread(ctx context.Context, userId, peerId int64) {
	unread, err := d.ComputeUnread(userId, peerId)
	if err != nil {
		zap.L().Error("compute unread error", zap.Error(err))
		return
	}
	d.publish(ctx, hub.UserChannel(userId), hub.EventUnreadUpdate, unread)
}

// invalidateHistory 异步失效最近一页历史缓存
func (d *directService) invalidateHistory(conversationId int64) {
	if d.cache == nil {
		return
	}
	key := historyCacheKey(conversationId)
	d.cache.SubmitTask(func() {
		if err := d.cache.Delete(context.Background(), key); err != nil {
			zap.L().Error("delete history cache error", zap.Error(err))
		}
	})
}
