// Package relation_action_enum 好友关系操作码
package relation_action_enum

const (
	FriendRequest = "friend_request" // 发起好友申请
	Accept        = "accept"        // 接受申请
	Reject        = "reject"        // 拒绝申请
	CancelRequest = "cancel_request" // 撤回申请
	Block         = "block"         // 拉黑
	Unblock       = "unblock"       // 取消拉黑
	Unfriend      = "unfriend"      // 解除好友
	SetNickname   = "set_nickname"  // 设置好友备注
)
