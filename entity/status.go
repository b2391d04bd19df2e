package entity

// สถานะของ order (ไล่ตามลำดับครัว → เสิร์ฟ → ปิดบิล)
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// สถานะของรายการอาหารในออเดอร์
const (
	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
	ItemServed    = "served"
)

// สถานะการจ่ายเงิน
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// สถานะโต๊ะ
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

// IsOrderTerminal = ออเดอร์จบแล้ว ห้ามเปลี่ยนสถานะต่อ
func IsOrderTerminal(status string) bool {
	return status == OrderCompleted || status == OrderCancelled
}
