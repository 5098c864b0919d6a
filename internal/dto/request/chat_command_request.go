package request

// ChatCommandRequest WebSocket 上行指令
// op 取值: "send"（发送私信）、"mark_read"（标记已读）
type ChatCommandRequest struct {
	Op         string `json:"op"`
	ReceiverId int64  `json:"receiver_id"`
	OtherId    int64  `json:"other_id"`
	Content    string `json:"content"`
	UpTo       string `json:"up_to"` // RFC3339
}
