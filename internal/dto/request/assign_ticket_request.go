package request

// AssignTicketRequest 指派工单请求（后台调用）
type AssignTicketRequest struct {
	TicketId            int64  `json:"ticket_id" binding:"required"`
	ToManagerId         int64  `json:"to_manager_id" binding:"required"`
	AssignedByManagerId *int64 `json:"assigned_by_manager_id"`
	Note                string `json:"note"`
}
