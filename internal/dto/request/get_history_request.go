package request

// GetHistoryRequest 查询私信历史请求
// after 为空时返回最近 page_size 条；非空时返回严格晚于该时间的全部消息
type GetHistoryRequest struct {
	OtherId  int64  `form:"other_id" binding:"required"`
	After    string `form:"after"`
	PageSize int    `form:"page_size"`
}
