package request

// SendMessageRequest 发送私信请求
type SendMessageRequest struct {
	ReceiverId int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}
