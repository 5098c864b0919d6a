package request

// CreateNotificationRequest 创建通知请求
// to_user_ids 与 to_manager_ids 合计至少一个收件人
// sender_user_id / sender_manager_id 至多一个非空，都为空时按系统通知写入
type CreateNotificationRequest struct {
	SourceId        int64   `json:"source_id" binding:"required"`
	ActionId        int64   `json:"action_id" binding:"required"`
	GroupId         *int64  `json:"group_id"`
	SenderUserId    *int64  `json:"sender_user_id"`
	SenderManagerId *int64  `json:"sender_manager_id"`
	Title           string  `json:"title" binding:"required"`
	Message         string  `json:"message"`
	ToUserIds       []int64 `json:"to_user_ids"`
	ToManagerIds    []int64 `json:"to_manager_ids"`
}
