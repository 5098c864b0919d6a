package request

// NudgeRequest 客服触发"工单已变更"信号的请求
// 鉴权参数与跨站接入一致
type NudgeRequest struct {
	TicketId  int64  `json:"ticket_id" binding:"required"`
	ManagerId int64  `json:"manager_id" binding:"required"`
	Expires   int64  `json:"expires" binding:"required"` // Unix 秒
	Signature string `json:"signature" binding:"required"`
}
