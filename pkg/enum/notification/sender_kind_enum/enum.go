// Package sender_kind_enum 通知/工单消息发送方身份
// 写入时一次性确定，读取侧不再通过判空推断
package sender_kind_enum

const (
	System  int8 = 0 // 系统
	User    int8 = 1 // 普通用户
	Manager int8 = 2 // 客服/管理员
)
