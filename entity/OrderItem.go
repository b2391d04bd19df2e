package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	// snapshot ชื่อ/ราคา ณ ตอนสั่ง — เมนูเปลี่ยนราคาทีหลังต้องไม่กระทบบิลเดิม
	ProductName string `json:"productName"`
	Qty         int    `json:"qty"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
	Status      string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Note        string `json:"note"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuID uint `json:"menuId"`
	Menu   Menu `json:"-"`
}
