package request

// MarkReadRequest 标记已读请求
// up_to 为 RFC3339 格式的 UTC 时间，早于等于该时间的对方消息被标记已读
type MarkReadRequest struct {
	OtherId int64  `json:"other_id" binding:"required"`
	UpTo    string `json:"up_to" binding:"required"`
}
