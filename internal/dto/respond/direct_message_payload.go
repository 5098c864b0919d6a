package respond

// DirectMessagePayload 私信消息载荷
// 通过 WebSocket 推送（事件 ReceiveDirect）并作为发送/历史接口的返回体
// sentAtIso 为 UTC ISO-8601 格式（以 Z 结尾）
type DirectMessagePayload struct {
	MessageId  int64  `json:"messageId"`
	SenderId   int64  `json:"senderId"`
	ReceiverId int64  `json:"receiverId"`
	Content    string `json:"content"`
	SentAtIso  string `json:"sentAtIso"`
}
