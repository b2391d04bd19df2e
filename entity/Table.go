package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Number int    `json:"number"`
	Status string `gorm:"type:varchar(20);not null;default:'available'" json:"status"`

	BranchID uint   `json:"branchId"`
	Branch   Branch `json:"-"`

	// ออเดอร์ของโต๊ะนี้ preload แค่ตอนต้องการ
	Orders []Order `json:"-"`
}
