package respond

// UnreadRespond 未读数统计（事件 UnreadUpdate 亦使用该结构）
type UnreadRespond struct {
	Total    int64 `json:"total"`    // 发给该用户的全部未读数
	FromPeer int64 `json:"fromPeer"` // 仅来自指定对端的未读数
}
