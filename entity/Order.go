package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	// เลขที่ออเดอร์สำหรับคนอ่าน (timestamp + suffix กันชนกัน)
	OrderNo string `gorm:"type:varchar(32);uniqueIndex" json:"orderNo"`

	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`

	Status        string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'pending'" json:"paymentStatus"`
	Notes         string `gorm:"type:text" json:"notes"`

	TableID uint  `gorm:"index" json:"tableId"`
	Table   Table `json:"-"` // preload เฉพาะตอนต้องการเลขโต๊ะ

	BranchID uint   `gorm:"index" json:"branchId"`
	Branch   Branch `json:"-"`

	CustomerID *uint     `json:"customerId"`
	Customer   *Customer `json:"-"`

	CompletedAt *time.Time `json:"completedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	Items []OrderItem `json:"-"` // preload แค่ตอน detail
}
