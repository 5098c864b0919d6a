// Package relation_status_enum 好友关系状态
package relation_status_enum

const (
	PENDING  int8 = 1 // 申请中
	ACCEPTED int8 = 2 // 已是好友
	BLOCKED  int8 = 3 // 已拉黑
	REMOVED  int8 = 4 // 已解除（或申请被撤回）
	REJECTED int8 = 5 // 已拒绝
	NONE     int8 = 6 // 无关系
)
