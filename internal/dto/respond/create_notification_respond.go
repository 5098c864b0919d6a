package respond

// CreateNotificationRespond 创建通知的返回体
type CreateNotificationRespond struct {
	NotificationId int64 `json:"notificationId"`
}
