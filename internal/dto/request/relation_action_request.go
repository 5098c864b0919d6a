package request

// RelationActionRequest 好友关系操作请求
// action 取值见 pkg/enum/relation/relation_action_enum
type RelationActionRequest struct {
	TargetId int64  `json:"target_id" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=friend_request accept reject cancel_request block unblock unfriend set_nickname"`
	Nickname string `json:"nickname"`
}
