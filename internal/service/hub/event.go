// Package hub 实现频道化的实时广播中心
// event.go
// 核心职责：定义频道命名、事件名与推送信封
package hub

import (
	"encoding/json"
	"fmt"
)

// 推送事件名
const (
	EventJoined        = "joined"        // 成功加入工单频道
	EventTicketMessage = "ticket.message" // 工单消息（完整载荷）
	EventTicketChanged = "msg"           // 工单已变更信号（无内容，提示重新拉取）
	EventReceiveDirect = "ReceiveDirect" // 私信消息
	EventReadReceipt   = "ReadReceipt"   // 已读回执
	EventUnreadUpdate  = "UnreadUpdate"  // 未读数变更
	EventError         = "error"         // 错误码事件
)

// UserChannel 返回用户频道 key
func UserChannel(userId int64) string {
	return fmt.Sprintf("user:%d", userId)
}

// TicketChannel 返回工单频道 key
func TicketChannel(ticketId int64) string {
	return fmt.Sprintf("ticket:%d", ticketId)
}

// Envelope 推送事件信封
// kafka 模式下该结构整体作为消息体在节点间流转
type Envelope struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope 组装信封并序列化 data
func NewEnvelope(channel, event string, data any) (*Envelope, error) {
	env := &Envelope{Channel: channel, Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return env, nil
}
