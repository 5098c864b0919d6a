package respond

// ReadReceiptPayload 已读回执载荷（事件 ReadReceipt）
type ReadReceiptPayload struct {
	FromUserId int64  `json:"fromUserId"`
	UpToIso    string `json:"upToIso"`
}
