package respond

// RelationRespond 好友关系操作/查询的返回体
// noOp 为 true 表示该操作未改变任何可见状态（幂等重放）
type RelationRespond struct {
	Status      int8   `json:"status"`
	RequestedBy *int64 `json:"requestedBy,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	NoOp        bool   `json:"noOp"`
}
