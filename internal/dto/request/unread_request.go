package request

// UnreadRequest 查询未读数请求
type UnreadRequest struct {
	PeerId int64 `form:"peer_id" binding:"required"`
}
