package respond

// TicketMessagePayload 工单频道消息载荷（事件 ticket.message）
type TicketMessagePayload struct {
	TicketId     int64  `json:"ticketId"`
	SenderIsUser bool   `json:"senderIsUser"`
	SenderId     int64  `json:"senderId"`
	Text         string `json:"text"`
	SentAtIso    string `json:"sentAtIso"`
}
