// Package hub
// hub.go
// 核心职责：维护频道 -> 订阅者注册表，按模式（channel/kafka）分发事件
package hub

import (
	"context"
	"encoding/json"
	"sync"

	"mall_social_server/internal/config"

	"go.uber.org/zap"
)

// Subscriber 代表一条长连接的收件箱
// 同一用户多端登录时各端持有独立的 Subscriber
type Subscriber struct {
	Id       string
	Channels []string
	Send     chan []byte
}

// Broker 跨节点消息代理（kafka 模式）
type Broker interface {
	Publish(ctx context.Context, payload []byte) error
	Start(hub *Hub)
	Close() error
}

// Hub 广播中心
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]struct{}
	broker      Broker
}

// NewHub 按配置创建广播中心
// messageMode 为 kafka 时由调用方注入 broker 并启动消费
func NewHub(broker Broker) *Hub {
	h := &Hub{
		subscribers: make(map[string]map[*Subscriber]struct{}),
		broker:      broker,
	}
	if broker != nil {
		broker.Start(h)
	}
	return h
}

// NewSubscriber 创建订阅者收件箱，缓冲大小由配置决定
func NewSubscriber(id string, channels ...string) *Subscriber {
	return &Subscriber{
		Id:       id,
		Channels: channels,
		Send:     make(chan []byte, config.GetConfig().HubConfig.ChannelSize),
	}
}

// Subscribe 将订阅者挂到其全部频道上
func (h *Hub) Subscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range sub.Channels {
		set, ok := h.subscribers[ch]
		if !ok {
			set = make(map[*Subscriber]struct{})
			h.subscribers[ch] = set
		}
		set[sub] = struct{}{}
	}
	zap.S().Debugf("订阅者 %s 加入频道 %v", sub.Id, sub.Channels)
}

// Unsubscribe 摘除订阅者并释放空频道
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range sub.Channels {
		set, ok := h.subscribers[ch]
		if !ok {
			continue
		}
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subscribers, ch)
		}
	}
	zap.S().Debugf("订阅者 %s 离开频道 %v", sub.Id, sub.Channels)
}

// SubscriberCount 返回频道当前订阅者数量
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}

// Publish 向频道广播一条事件
// 没有订阅者时静默返回，kafka 模式下经代理转发到所有节点
func (h *Hub) Publish(ctx context.Context, channel, event string, data any) error {
	env, err := NewEnvelope(channel, event, data)
	if err != nil {
		zap.S().Errorf("事件序列化失败：%v", err)
		return err
	}
	payload, err := json.Marshal(env)
	if err != nil {
		zap.S().Errorf("信封序列化失败：%v", err)
		return err
	}
	if h.broker != nil {
		return h.broker.Publish(ctx, payload)
	}
	h.DeliverLocal(payload)
	return nil
}

// DeliverLocal 把信封投递给本节点的频道订阅者
// 投递全程持有读锁，Unsubscribe 返回后不会再有发送触及该订阅者的收件箱
// 收件箱已满时丢弃该订阅者的本条消息，避免慢连接拖垮全局
func (h *Hub) DeliverLocal(payload []byte) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		zap.S().Errorf("信封解析失败：%v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[env.Channel] {
		select {
		case sub.Send <- payload:
		default:
			zap.S().Warnf("订阅者 %s 收件箱已满，频道 %s 的消息被丢弃", sub.Id, env.Channel)
		}
	}
}

// DeliverTo 绕过频道，把事件只投递给单个订阅者
// 用于 joined 这类只与新连接有关的事件
func (h *Hub) DeliverTo(sub *Subscriber, event string, data any) {
	env, err := NewEnvelope("", event, data)
	if err != nil {
		zap.S().Errorf("事件序列化失败：%v", err)
		return
	}
	payload, err := json.Marshal(env)
	if err != nil {
		zap.S().Errorf("信封序列化失败：%v", err)
		return
	}
	select {
	case sub.Send <- payload:
	default:
		zap.S().Warnf("订阅者 %s 收件箱已满，事件 %s 被丢弃", sub.Id, event)
	}
}

// Close 停止 kafka 消费并关闭代理
func (h *Hub) Close() error {
	if h.broker != nil {
		return h.broker.Close()
	}
	return nil
}
