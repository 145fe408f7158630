package domain

// Table is a mongo collection name.
type Table string

const (
	TablePromotionLogs Table = "promotion_logs"
	TableReceipts      Table = "receipts"
)
