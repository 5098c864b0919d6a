package request

// TicketPushRequest 服务端直推工单消息请求
// 仅供可信后端调用，内容已在上游校验
type TicketPushRequest struct {
	TicketId     int64  `json:"ticket_id" binding:"required"`
	SenderIsUser bool   `json:"sender_is_user"`
	SenderId     int64  `json:"sender_id" binding:"required"`
	Text         string `json:"text" binding:"required"`
	SentAt       string `json:"sent_at" binding:"required"` // RFC3339
}
